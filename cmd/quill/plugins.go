package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/quill/internal/app"
	"github.com/dshills/quill/internal/logging"
)

func newPluginsCommand(f *flags) *cobra.Command {
	var showKeys bool
	cmd := &cobra.Command{
		Use:   "plugins",
		Short: "List loaded plugins and what they contribute",
		Long: `Load the core plugin and every manifest in the plugin directory, then
print each plugin with the number of menu items, keymaps and sensitivities
it contributes. With --keys the merged main keymap is printed as well.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*f)
			if err != nil {
				return err
			}
			p, err := cfg.ResolvePlatform()
			if err != nil {
				return err
			}
			logger := logging.NewConsole(cmd.ErrOrStderr(), logging.ParseLevel(cfg.LogLevel))
			pm, err := loadPlugins(cfg.PluginDir, logging.Component(logger, "plugin"))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, l := range pm.Loaded() {
				items := 0
				if l.Menus != nil {
					items = l.Menus.Len()
				}
				fmt.Fprintf(out, "%-20s menus=%d keymaps=%d sensitivities=%d\n",
					l.Name(), items, len(l.Keymaps), len(l.Sensitivities))
			}

			if !showKeys {
				return nil
			}
			actx, err := app.Start(app.Options{Plugins: pm, Platform: p, Logger: &logger})
			if err != nil {
				return err
			}
			defer actx.App.Destroy()
			fmt.Fprintf(out, "\nmain keymap (%s):\n", p)
			for _, b := range actx.App.MainKeymap().Bindings() {
				fmt.Fprintf(out, "  %-16s %s\n", b.Chord, b.Action)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showKeys, "keys", false, "Print the merged main keymap")
	return cmd
}
