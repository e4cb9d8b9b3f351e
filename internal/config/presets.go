package config

// Presets holds named setups per scene. Values are complete configs;
// GetPreset returns a copy so callers may override fields.
var Presets = map[string]map[string]*Config{
	"ragdoll": {
		"small": preset("ragdoll", func(c *Config) { c.Ragdoll.LimbLength = 25 }),
		"large": preset("ragdoll", func(c *Config) { c.Ragdoll.LimbLength = 70 }),
		"tumble": preset("ragdoll", func(c *Config) {
			c.Sensor = SensorConfig{Kind: "wobble", Smoothing: 0.3, Period: 180}
		}),
	},
	"chain": {
		"short": preset("chain", func(c *Config) { c.Chain.Points = 6; c.Chain.SegmentLength = 20 }),
		"long":  preset("chain", func(c *Config) { c.Chain.Points = 30; c.Chain.SegmentLength = 8 }),
		"swing": preset("chain", func(c *Config) {
			c.Sensor = SensorConfig{Kind: "script", Smoothing: 1, Keyframes: []Keyframe{
				{Step: 0, X: 0, Y: 1},
				{Step: 120, X: 1, Y: 0},
				{Step: 240, X: -1, Y: 0},
				{Step: 360, X: 0, Y: 1},
			}}
		}),
	},
	"liquid": {
		"drop":    preset("liquid", func(c *Config) { c.Liquid.Rows = 3; c.Liquid.Columns = 4 }),
		"full":    preset("liquid", func(c *Config) { c.Liquid.Rows = MaxRows; c.Liquid.Columns = MaxColumns; c.Liquid.Radius = 9 }),
		"settled": preset("liquid", func(c *Config) { c.Liquid.SyncVelocity = true }),
	},
	"bodies": {
		"pair":   preset("bodies", func(c *Config) { c.Bodies.Count = 2; c.Bodies.Radius = 40 }),
		"crowd":  preset("bodies", func(c *Config) { c.Bodies.Count = MaxBodies; c.Bodies.Radius = 22 }),
		"bouncy": preset("bodies", func(c *Config) { c.Bodies.Restitution = 0.95 }),
	},
}

func preset(scene string, edit func(*Config)) *Config {
	c := DefaultConfig()
	c.Scene = scene
	edit(c)
	return c
}

func GetPreset(scene, name string) *Config {
	scenePresets, ok := Presets[scene]
	if !ok {
		return nil
	}
	cfg, ok := scenePresets[name]
	if !ok {
		return nil
	}
	cp := *cfg
	cp.Sensor.Keyframes = append([]Keyframe(nil), cfg.Sensor.Keyframes...)
	return &cp
}

func ListPresets(scene string) []string {
	scenePresets, ok := Presets[scene]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(scenePresets))
	for name := range scenePresets {
		names = append(names, name)
	}
	return names
}
