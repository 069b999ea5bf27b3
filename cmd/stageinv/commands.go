package main

import (
	"bytes"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	"github.com/stagecrew/stageinv/internal/announce"
	"github.com/stagecrew/stageinv/internal/config"
	"github.com/stagecrew/stageinv/internal/export"
	"github.com/stagecrew/stageinv/internal/model"
	"github.com/stagecrew/stageinv/internal/store"
)

func (c *cli) seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the sample items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.openStores(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			items, err := store.SeedSampleItems(cmd.Context(), s.db)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Inserted %d sample items\n", len(items))
			return nil
		},
	}
}

func (c *cli) locationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "locations",
		Short: "Manage storage locations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List storage locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.openStores(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			locs, err := store.ListLocations(cmd.Context(), s.db)
			if err != nil {
				return err
			}
			for _, l := range locs {
				fmt.Fprintln(cmd.OutOrStdout(), l)
			}
			return nil
		},
	}, &cobra.Command{
		Use:   "add <name>",
		Short: "Add a storage location",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.openStores(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			if err := store.AddLocation(cmd.Context(), s.db, args[0]); err != nil {
				return err
			}
			slog.Info("location added", "location", args[0])
			return nil
		},
	})

	return cmd
}

func (c *cli) exportCmd() *cobra.Command {
	var (
		filter              model.ItemFilter
		inUse, sortKey, out string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export items as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if inUse != "" {
				b, err := strconv.ParseBool(inUse)
				if err != nil {
					return fmt.Errorf("invalid --in-use value %q", inUse)
				}
				filter.InUse = &b
			}

			s, err := c.openStores(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			items, err := store.ListItems(cmd.Context(), s.db, filter)
			if err != nil {
				return err
			}
			if sortKey != "" {
				model.SortItems(items, sortKey)
			}

			if out == "" {
				return export.WriteItemsCSV(cmd.OutOrStdout(), items)
			}

			var buf bytes.Buffer
			if err := export.WriteItemsCSV(&buf, items); err != nil {
				return err
			}
			if err := atomic.WriteFile(out, &buf); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}
			slog.Info("items exported", "path", out, "count", len(items))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&filter.NameQuery, "query", "q", "", "name substring")
	f.StringArrayVar(&filter.Categories, "category", nil, "category (repeatable)")
	f.StringArrayVar(&filter.Tags, "tag", nil, "crew tag (repeatable)")
	f.StringArrayVar(&filter.Locations, "location", nil, "location (repeatable)")
	f.StringVar(&inUse, "in-use", "", "true or false")
	f.StringVar(&sortKey, "sort", "", "name, category, crew_tag, location or in_use")
	f.StringVarP(&out, "out", "o", "", "output file (default: stdout)")
	return cmd
}

func (c *cli) announceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "announce",
		Short: "Read and post announcements",
	}

	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "Show recent announcements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.openStores(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			anns, err := s.board.List(limit)
			if err != nil {
				return err
			}
			for _, a := range anns {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s: %s\n",
					a.ID, a.TS.Local().Format("2006-01-02 15:04"), a.Author, a.Text)
			}
			return nil
		},
	}
	list.Flags().IntVarP(&limit, "limit", "n", announce.DefaultLimit, "maximum number to show (0 for all)")

	var author string
	add := &cobra.Command{
		Use:   "add <text>",
		Short: "Post an announcement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := model.ValidateAnnouncement(args[0]); err != nil {
				return err
			}

			s, err := c.openStores(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			ann, err := s.board.Add(args[0], author)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ann.ID)
			return nil
		},
	}
	add.Flags().StringVar(&author, "author", "System", "author name")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an announcement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.openStores(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			return s.board.Delete(args[0])
		},
	}

	cmd.AddCommand(list, add, del)
	return cmd
}

func (c *cli) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := *c.cfg
			if cfg.JWTSecret != "" {
				cfg.JWTSecret = "<redacted>"
			}
			return config.Write(cmd.OutOrStdout(), &cfg)
		},
	}
}
