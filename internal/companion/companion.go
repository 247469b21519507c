// Package companion implements the cat companion's behavior state
// machine: it idles near the player, follows with a little wander,
// guides the player to hide spots, and waits when the player falls
// behind. All movement goes through the world.Mover primitive; the
// engine-side navigation agent is an external collaborator.
package companion

import (
	"math"
	"math/rand"

	"github.com/quietpond/straycat/internal/config"
	"github.com/quietpond/straycat/internal/events"
	"github.com/quietpond/straycat/internal/geom"
	"github.com/quietpond/straycat/internal/logger"
	"github.com/quietpond/straycat/internal/world"
)

// State is the companion's current behavior mode.
type State string

const (
	StateIdle   State = "idle"
	StateFollow State = "follow"
	StateGuide  State = "guide"
	StateWait   State = "wait"
)

// Chat lines the companion uses. Short, cat-appropriate.
const (
	arrivalLine      = "Hide here!"
	guideReminder    = "This way! Follow me!"
	waitReminder     = "Mrrp. Let's catch our breath."
	arrivalChatSecs  = 2.0
	reminderChatSecs = 2.5
)

// Animation parameter tuning. Velocities below the deadzone read as
// noise from the navigation agent and are settled to zero.
const (
	animDeadzone   = 0.1
	maxForwardAnim = 4.0
	maxTurnAnim    = 3.0
)

// Controller runs the companion behavior state machine. Update must be
// called once per tick from the game loop goroutine; no locks needed.
type Controller struct {
	Name string

	cfg      config.CompanionConfig
	w        *world.World
	playerID world.EntityID
	mover    world.Mover
	bus      *events.Bus
	rng      *rand.Rand

	state        State
	guideTarget  *geom.Vec3
	followOffset geom.Vec3
	wanderTimer  float64
	waitTimer    float64
	now          float64

	chatText  string
	chatUntil float64

	anim AnimParams
}

// AnimParams are the values pushed to the animation system every tick.
type AnimParams struct {
	Forward float64 // forward speed along the facing direction
	Turn    float64 // lateral/turn rate, negative is left
	Noise   float64 // decorative idle fidget channel in [0, 1]
	State   State
}

// New creates a companion controller in the Idle state with no guide
// target. The seed drives the wander offsets; fixed seeds give
// reproducible paths in tests.
func New(name string, cfg config.CompanionConfig, w *world.World, playerID world.EntityID, mover world.Mover, bus *events.Bus, seed int64) *Controller {
	return &Controller{
		Name:     name,
		cfg:      cfg,
		w:        w,
		playerID: playerID,
		mover:    mover,
		bus:      bus,
		rng:      rand.New(rand.NewSource(seed)),
		state:    StateIdle,
	}
}

// State returns the current behavior state.
func (c *Controller) State() State {
	return c.state
}

// GuideTarget returns the current guide target, or nil when the
// companion isn't leading anywhere.
func (c *Controller) GuideTarget() *geom.Vec3 {
	return c.guideTarget
}

// Animation returns the parameters derived on the most recent Update.
func (c *Controller) Animation() AnimParams {
	return c.anim
}

// SetGuideTarget points the companion at a destination to lead the
// player toward and switches it into Guide.
func (c *Controller) SetGuideTarget(target geom.Vec3) {
	t := target
	c.guideTarget = &t
	c.setState(StateGuide)
}

// SetWaitState parks the companion in Wait, keeping any pending guide
// target so guiding resumes when the player closes in.
func (c *Controller) SetWaitState() {
	c.setState(StateWait)
}

// Update advances the state machine by dt seconds.
func (c *Controller) Update(dt float64) {
	c.now += dt

	player, ok := c.w.Get(c.playerID)
	if !ok {
		// No player to react to; settle in place rather than crash.
		c.mover.Stop()
		c.deriveAnimation()
		return
	}

	// The wander offset refreshes on its own cadence, independent of
	// state transitions.
	c.wanderTimer += dt
	if c.wanderTimer >= c.cfg.WanderInterval {
		c.wanderTimer = 0
		c.followOffset = c.randomOffset()
	}

	switch c.state {
	case StateIdle:
		c.updateIdle(player)
	case StateFollow:
		c.updateFollow(player)
	case StateGuide:
		c.updateGuide(player)
	case StateWait:
		c.updateWait(player, dt)
	}

	c.deriveAnimation()
}

func (c *Controller) updateIdle(player *world.Entity) {
	if geom.Distance(c.mover.Position(), player.Pos) > c.cfg.FollowThreshold {
		c.setState(StateFollow)
		return
	}
	c.mover.Stop()
}

func (c *Controller) updateFollow(player *world.Entity) {
	self := c.mover.Position()
	desired := player.Pos.
		Add(player.Forward.Flat().Normalized().Scale(c.cfg.FollowThreshold)).
		Add(c.followOffset)

	rawDir := desired.Sub(self).Flat()
	if rawDir.Length() < 1e-6 {
		return
	}

	// Never demand a course change sharper than the turn budget; swap in
	// the clamped direction at follow distance instead of snap-turning.
	dir := geom.ClampDirection(c.mover.Facing(), rawDir, c.cfg.MaxTurnAngle)
	if dir != rawDir {
		desired = self.Add(dir.Normalized().Scale(c.cfg.FollowThreshold))
	}
	c.mover.SetDestination(desired)
}

func (c *Controller) updateGuide(player *world.Entity) {
	if c.guideTarget == nil {
		logger.Warning("Companion guiding without a target", "companion", c.Name)
		c.setState(StateFollow)
		return
	}

	self := c.mover.Position()
	if geom.Distance(self, player.Pos) > c.cfg.GuideThreshold {
		// Player fell behind; hold position until they catch up.
		c.mover.Stop()
		c.setState(StateWait)
		return
	}

	if geom.Distance(self, *c.guideTarget) <= c.cfg.ArriveRadius {
		c.mover.Stop()
		c.mover.FaceToward(player.Pos)
		c.Say(arrivalLine, arrivalChatSecs)
		c.guideTarget = nil
		c.setState(StateWait)
		return
	}

	c.mover.SetDestination(*c.guideTarget)
}

func (c *Controller) updateWait(player *world.Entity, dt float64) {
	c.waitTimer += dt
	if c.waitTimer >= c.cfg.WaitReminder {
		c.waitTimer = 0
		if c.guideTarget != nil {
			c.Say(guideReminder, reminderChatSecs)
		} else {
			c.Say(waitReminder, reminderChatSecs)
		}
	}

	if c.guideTarget != nil &&
		geom.Distance(c.mover.Position(), player.Pos) < c.cfg.GuideThreshold/2 {
		c.mover.SetDestination(*c.guideTarget)
		c.setState(StateGuide)
		return
	}

	c.mover.FaceToward(player.Pos)
}

// Say displays a transient chat line. The slot is single-entry: a new
// message cancels and replaces whatever is currently showing.
func (c *Controller) Say(text string, duration float64) {
	c.chatText = text
	c.chatUntil = c.now + duration
	c.bus.Publish(events.Event{
		Type:     events.TypeChatRequested,
		Source:   c.Name,
		Text:     text,
		Duration: duration,
	})
}

// ChatText returns the currently visible chat line, or "" once the
// message has expired.
func (c *Controller) ChatText() string {
	if c.now >= c.chatUntil {
		return ""
	}
	return c.chatText
}

// setState transitions the behavior state, resetting the wait timer and
// announcing the change. Re-entering the current state is a no-op.
func (c *Controller) setState(next State) {
	if c.state == next {
		return
	}
	logger.Debug("Companion state changed", "companion", c.Name, "from", c.state, "to", next)
	c.state = next
	c.waitTimer = 0
	c.bus.Publish(events.Event{
		Type:   events.TypeCompanionState,
		Source: c.Name,
		Text:   string(next),
	})
}

// randomOffset picks a bounded random planar offset around the follow
// point so the companion drifts organically instead of marching a fixed
// line.
func (c *Controller) randomOffset() geom.Vec3 {
	angle := c.rng.Float64() * 2 * math.Pi
	dist := c.cfg.WanderRadius * math.Sqrt(c.rng.Float64())
	return geom.Vec3{X: math.Cos(angle) * dist, Z: math.Sin(angle) * dist}
}

// deriveAnimation converts the mover's world velocity into the
// locally-framed parameters the animator consumes. Idle and Wait force
// motion channels to zero so the cat visually settles.
func (c *Controller) deriveAnimation() {
	c.anim.State = c.state
	c.anim.Noise = idleNoise(c.now)

	if c.state == StateIdle || c.state == StateWait {
		c.anim.Forward = 0
		c.anim.Turn = 0
		return
	}

	vel := c.mover.Velocity()
	if vel.Length() < animDeadzone {
		c.anim.Forward = 0
		c.anim.Turn = 0
		return
	}

	facing := c.mover.Facing().Flat().Normalized()
	right := geom.RotateY(facing, 90)
	c.anim.Forward = geom.Clamp(vel.Dot(facing), 0, maxForwardAnim)
	c.anim.Turn = geom.Clamp(vel.Dot(right), -maxTurnAnim, maxTurnAnim)
}

// idleNoise is a cheap smooth fidget signal in [0, 1] built from two
// incommensurate sine waves.
func idleNoise(t float64) float64 {
	return geom.Clamp01(0.5 + 0.25*math.Sin(t*0.7) + 0.25*math.Sin(t*1.9))
}
