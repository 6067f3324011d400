package game

const (
	SimHz          = 60.0 // server tick rate
	UpdateRateHz   = 20.0 // per-client WS state pushes
	RoomMaxPlayers = 2
	WorldW         = 800
	WorldH         = 600

	Gravity       = 0.1  // px/tick² applied to every projectile
	VelocityScale = 0.15 // launch speed per unit of power

	WurmWidth     = 30.0
	WurmHeight    = 10.0
	WurmGravity   = 0.2
	WurmMaxHealth = 100.0
	WurmSpawnEdge = 100.0 // minimum distance of a spawn from its side wall
	WurmSpawnJit  = 100.0

	TerrainOctaves       = 4
	TerrainBaseFrequency = 0.002 // rad/px of the lowest octave
	TerrainSampleStep    = 4     // px between height samples sent to clients

	RestSlopeMax   = 1.0 // |slope| below which a fused projectile may settle
	RestSpeedMax   = 1.5 // |dy| below which a fused projectile settles instead of bouncing
	RollAccel      = 0.2
	RollFriction   = 0.9
	BounceNormal   = 0.5
	BounceTangent  = 0.7
	SlopeProbeDist = 1.0

	ExplosionFrames = 30

	ClusterDamageScale = 0.5
	ClusterSpread      = 0.5 // child offset as a fraction of the parent explosion radius
	ClusterSpeedScale  = 0.1 // child speed per px of parent explosion radius

	TrailLength = 48

	DefaultSimulateTicks = 5000
	ObservationStep      = 20

	MaxPower = 100.0
	MaxAngle = 180.0

	BotThinkS = 1.0 // seconds the scripted opponent waits before firing
)
