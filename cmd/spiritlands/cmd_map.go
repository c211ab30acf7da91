package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tLat87/SpiritLands/internal/config"
	"github.com/tLat87/SpiritLands/internal/geo"
	"github.com/tLat87/SpiritLands/pkg/core"
)

type mapOptions struct {
	near  string
	focus string
	limit int
	route bool
}

func newMapCmd(a *app) *cobra.Command {
	var opts mapOptions
	cmd := &cobra.Command{
		Use:   "map",
		Short: "Show the map region of the catalog or the items near a point",
		Example: `  spiritlands map
  spiritlands map --kind volcano --focus 8
  spiritlands map --near 48.85,2.35 --limit 3`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{noStorage: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("limit") {
				opts.limit = config.GetInt("map.nearLimit")
			}
			switch a.kind {
			case core.KindVolcano:
				return showMap(a, a.volcanoView(), opts)
			default:
				return showMap(a, a.aircraftView(), opts)
			}
		},
	}
	cmd.Flags().StringVar(&opts.near, "near", "", "list items nearest to lat,lon")
	cmd.Flags().StringVar(&opts.focus, "focus", "", "centre the region on one item id")
	cmd.Flags().IntVar(&opts.limit, "limit", 5, "number of nearest items to list (config map.nearLimit)")
	cmd.Flags().BoolVar(&opts.route, "route", false, "print the projected bounds and route as WKT")
	return cmd
}

func showMap[C core.Category](a *app, v view[C], opts mapOptions) error {
	items := v.catalog.Items()

	var region geo.Region
	if opts.focus != "" {
		it, err := v.catalog.Get(opts.focus)
		if err != nil {
			return err
		}
		region = geo.FocusRegion(it.Coordinates)
	} else {
		region = geo.FitRegion(geo.Coordinates(items), config.GetFloat("map.padding"))
	}
	fmt.Fprintf(a.out, "Region: centre %.4f, %.4f  span %.2f x %.2f degrees\n",
		region.Center.Latitude, region.Center.Longitude, region.LatitudeDelta, region.LongitudeDelta)

	if opts.route {
		coords := geo.Coordinates(items)
		env, err := geo.Envelope(coords)
		if err != nil {
			return err
		}
		path, err := geo.Path(coords)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Bounds (EPSG:3857): %s\n", env.AsGeometry().AsText())
		fmt.Fprintf(a.out, "Route (EPSG:3857): %s\n", path.AsText())
	}

	if opts.near == "" {
		return nil
	}
	from, err := geo.ParseCoordinates(opts.near)
	if err != nil {
		return fmt.Errorf("--near %q: %w", opts.near, err)
	}

	t := newTable("ID", "NAME", "COUNTRY", "DISTANCE")
	for _, n := range geo.Nearest(items, from, opts.limit) {
		t.addRow(n.Item.ID, n.Item.Name, n.Item.Country, fmt.Sprintf("%.0f km", n.DistanceKm))
	}
	return t.render(a.out)
}
