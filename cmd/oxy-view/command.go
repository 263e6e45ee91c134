package main

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-view/engine/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// launcher starts the viewer with the effective config and model selection.
type launcher func(cfg *config.Config, sel selection) error

// sceneFlags holds the generator flags. They override the config only when set on the command line.
type sceneFlags struct {
	size, width, length, height, max *float32
	count, instances                 *int
	seed                             *uint64
	logLevel                         *string
	profile                          *bool
}

// newRootCommand builds the oxy-view command. Defaults come from config.Default, a config file
// overrides them and explicit flags override the file.
//
// Parameters:
//   - launch: called with the effective config once flags are resolved
//
// Returns:
//   - *cobra.Command: the root command
func newRootCommand(launch launcher) *cobra.Command {
	var (
		configPath  string
		writeConfig string
		sel         selection
		sf          sceneFlags
	)

	cmd := &cobra.Command{
		Use:   "oxy-view",
		Short: "Interactive 3D viewer for generated and loaded models",
		Long: `oxy-view renders simple generated models (cube, plane, house, height-field surface)
or a Wavefront OBJ file and lets you orbit the scene.

Controls: W/S or Up/Down move, A/D or Left/Right strafe, Space/Shift up/down,
left-drag rotates, the wheel zooms and Escape quits. With no model flags a cube is shown.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			applySceneFlags(cmd.Flags(), cfg, sf)

			if writeConfig != "" {
				if err := cfg.SaveTo(writeConfig); err != nil {
					return fmt.Errorf("failed to write config: %w", err)
				}
			}

			if sel.empty() {
				sel.Cube = true
			}
			return launch(cfg, sel)
		},
	}

	def := config.Default()
	fs := cmd.Flags()
	fs.BoolVar(&sel.Cube, "cube", false, "add a cube of --size")
	fs.BoolVar(&sel.Plane, "plane", false, "add a plane of --size")
	fs.BoolVar(&sel.House, "house", false, "add a house of --width, --length and --height")
	fs.BoolVar(&sel.Surface, "surface", false, "add a random surface of --count cells, --size spacing and --max height")
	fs.BoolVar(&sel.File, "file", false, "add a model file chosen in a file dialog")
	fs.StringVar(&sel.Path, "path", "", "add the model file at `path` without a dialog")

	sf.size = fs.Float32("size", def.Scene.Size, "cube and plane size, surface half spacing")
	sf.width = fs.Float32("width", def.Scene.Width, "house width")
	sf.length = fs.Float32("length", def.Scene.Length, "house length")
	sf.height = fs.Float32("height", def.Scene.Height, "house wall height")
	sf.count = fs.Int("count", def.Scene.Count, "surface cells per side")
	sf.max = fs.Float32("max", def.Scene.Max, "surface maximum height")
	sf.seed = fs.Uint64("seed", def.Scene.Seed, "surface seed, 0 picks a random one")
	sf.instances = fs.Int("instances", def.Scene.PerRow, "instances per row of the instance grid")
	sf.logLevel = fs.String("log-level", def.Logging.Level, "log level (debug, info, warn, error)")
	sf.profile = fs.Bool("profile", def.Profiler.Enabled, "log frame rate and memory once per second")

	fs.StringVar(&configPath, "config", "", "config file (default ./"+config.FileName+", then the user config dir)")
	fs.StringVar(&writeConfig, "write-config", "", "write the effective config to `file`")
	fs.SortFlags = false

	return cmd
}

// applySceneFlags copies the flags the user set onto cfg.
func applySceneFlags(fs *pflag.FlagSet, cfg *config.Config, sf sceneFlags) {
	if fs.Changed("size") {
		cfg.Scene.Size = *sf.size
	}
	if fs.Changed("width") {
		cfg.Scene.Width = *sf.width
	}
	if fs.Changed("length") {
		cfg.Scene.Length = *sf.length
	}
	if fs.Changed("height") {
		cfg.Scene.Height = *sf.height
	}
	if fs.Changed("count") {
		cfg.Scene.Count = *sf.count
	}
	if fs.Changed("max") {
		cfg.Scene.Max = *sf.max
	}
	if fs.Changed("seed") {
		cfg.Scene.Seed = *sf.seed
	}
	if fs.Changed("instances") {
		cfg.Scene.PerRow = *sf.instances
	}
	if fs.Changed("log-level") {
		cfg.Logging.Level = *sf.logLevel
	}
	if fs.Changed("profile") {
		cfg.Profiler.Enabled = *sf.profile
	}
}
