package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theoremus-urban-solutions/stc-gtfs-canonical/label"
	"github.com/theoremus-urban-solutions/stc-gtfs-canonical/overrides"
)

func newStopIDCommand(ctx *commandContext) *cobra.Command {
	var code, id, name string
	cmd := &cobra.Command{
		Use:   "stop-id",
		Short: "Print the canonical id of one raw stop",
		RunE: func(cmd *cobra.Command, args []string) error {
			if code == "" && id == "" {
				return fmt.Errorf("stop-id needs --code or --id")
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			t, err := buildTables(cfg)
			if err != nil {
				return err
			}
			canonical, err := t.assigner.Assign(code, id, name)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Canonical id: %d\n", canonical)
			if pc := t.assigner.PublicCode(code, id); pc != "" {
				fmt.Fprintf(out, "Public code:  %s\n", pc)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&code, "code", "", "Raw stop_code")
	cmd.Flags().StringVar(&id, "id", "", "Raw stop_id")
	cmd.Flags().StringVar(&name, "name", "", "Raw stop_name")
	return cmd
}

func newNormalizeCommand(ctx *commandContext) *cobra.Command {
	var kind, route string
	cmd := &cobra.Command{
		Use:   "normalize LABEL...",
		Short: "Print the display form of raw labels",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, ok := label.ParseKind(kind)
			if !ok {
				return fmt.Errorf("unknown label kind %q (want stop, headsign or route)", kind)
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			t, err := buildTables(cfg)
			if err != nil {
				return err
			}
			for _, raw := range args {
				var got string
				if k == label.TripHeadsign {
					got = t.normalizer.NormalizeHeadsign(raw, route)
				} else {
					got = t.normalizer.Normalize(raw, k)
				}
				fmt.Fprintln(cmd.OutOrStdout(), got)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "headsign", "Label kind: stop, headsign or route")
	cmd.Flags().StringVar(&route, "route", "", "Route short name stripped from headsigns")
	return cmd
}

func newColorsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "colors",
		Short: "List the route color table",
		RunE: func(cmd *cobra.Command, args []string) error {
			all := overrides.DefaultColorTable().All()
			rows := make([][]string, 0, len(all))
			for _, rc := range all {
				color := string(rc.Color)
				if rc.Color == overrides.Unknown {
					color = "(agency " + string(overrides.AgencyColor) + ")"
				}
				rows = append(rows, []string{fmt.Sprint(rc.Route), color})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Route", "Color"},
				rows,
				[]columnAlignment{alignRight, alignLeft},
			))
			return nil
		},
	}
}
