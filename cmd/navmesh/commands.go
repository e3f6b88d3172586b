package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/spf13/cobra"

	"navmesh-planner/internal/config"
	"navmesh-planner/navmesh"
)

var (
	configPath string
	sourcePath string
	indexKind  string
	savePath   string

	cfg config.Planner

	rootCmd = &cobra.Command{
		Use:   "navmesh",
		Short: "Build navigation meshes from walkable polygons and plan paths across them",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.LoadPlanner(configPath)
			if err != nil {
				return err
			}
			if sourcePath != "" {
				cfg.Mesh.Source = sourcePath
			}
			if indexKind != "" {
				cfg.SpatialIndex.Kind = indexKind
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			setupLogging(cfg.Log)
			return nil
		},
		SilenceUsage: true,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve route, region and graph queries over HTTP",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}

	pathCmd = &cobra.Command{
		Use:   "path [x,y,z] [x,y,z]",
		Short: "Print the smoothed path between two points as JSON",
		Args:  cobra.ExactArgs(2),
		RunE:  runPath,
	}

	inspectCmd = &cobra.Command{
		Use:   "inspect",
		Short: "Build the mesh and report its regions and graph",
		Args:  cobra.NoArgs,
		RunE:  runInspect,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "navmesh.yaml", "Path to the YAML config file")
	rootCmd.PersistentFlags().StringVarP(&sourcePath, "source", "s", "", "Override mesh.source (GeoJSON file, directory or snapshot)")
	rootCmd.PersistentFlags().StringVar(&indexKind, "index", "", "Override spatial_index.kind (none, rtree, cells)")

	inspectCmd.Flags().StringVar(&savePath, "save", "", "Write a JSON snapshot of the built mesh to this file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(pathCmd)
	rootCmd.AddCommand(inspectCmd)
}

func setupLogging(lc config.LogConfig) {
	opts := &slog.HandlerOptions{Level: lc.SlogLevel()}
	var handler slog.Handler
	if lc.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func runServe(cmd *cobra.Command, args []string) error {
	mesh, err := loadMesh(cfg)
	if err != nil {
		// the server can still receive polygons on /build
		slog.Warn("no navigation mesh loaded", "source", cfg.Mesh.Source, "err", err)
		if mesh, err = newMesh(cfg); err != nil {
			return err
		}
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      newServer(cfg, mesh).routes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	slog.Info("server starting",
		"addr", srv.Addr,
		"endpoints", "POST /route, POST /region, POST /build, GET /graph, GET /health, GET /metrics",
	)
	return srv.ListenAndServe()
}

func runPath(cmd *cobra.Command, args []string) error {
	from, err := parsePoint(args[0])
	if err != nil {
		return err
	}
	to, err := parsePoint(args[1])
	if err != nil {
		return err
	}

	mesh, err := loadMesh(cfg)
	if err != nil {
		return err
	}

	path := mesh.FindPath(from, to)
	if len(path) == 0 {
		return fmt.Errorf("no path from %v to %v", from, to)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(path)
}

func runInspect(cmd *cobra.Command, args []string) error {
	mesh, err := loadMesh(cfg)
	if err != nil {
		return err
	}

	snapshot := mesh.Export()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "regions:         %d\n", len(snapshot.Regions))
	fmt.Fprintf(out, "graph edges:     %d\n", len(snapshot.Edges))
	fmt.Fprintf(out, "half-edges:      %d\n", snapshot.HalfEdges)
	fmt.Fprintf(out, "shared vertices: %d\n", snapshot.SharedVertices)

	table := navmesh.NewCostTable(mesh)
	components := connectedComponents(table)
	fmt.Fprintf(out, "components:      %d\n", components)

	if savePath != "" {
		return navmesh.SaveSnapshot(snapshot, savePath)
	}
	return nil
}

// connectedComponents counts groups of mutually reachable regions.
func connectedComponents(table *navmesh.CostTable) int {
	seen := make([]bool, table.Size())
	count := 0
	for i := range seen {
		if seen[i] {
			continue
		}
		count++
		for j := range seen {
			if c, err := table.Cost(i, j); err == nil && !math.IsInf(c, 1) {
				seen[j] = true
			}
		}
	}
	return count
}

// parsePoint reads "x,y,z".
func parsePoint(s string) (mgl64.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return mgl64.Vec3{}, fmt.Errorf("point %q: want x,y,z", s)
	}
	var p mgl64.Vec3
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return mgl64.Vec3{}, fmt.Errorf("point %q: %w", s, err)
		}
		p[i] = v
	}
	return p, nil
}
