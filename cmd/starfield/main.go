package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/Carmen-Shannon/oxy-scroll/engine"
	"github.com/Carmen-Shannon/oxy-scroll/engine/camera"
	"github.com/Carmen-Shannon/oxy-scroll/engine/layout"
	"github.com/Carmen-Shannon/oxy-scroll/engine/renderer"
	"github.com/Carmen-Shannon/oxy-scroll/engine/scroll"
	"github.com/Carmen-Shannon/oxy-scroll/engine/starfield"
	"github.com/Carmen-Shannon/oxy-scroll/engine/window"
)

var (
	sceneName = flag.String("scene", "solar", "layout to fly through ("+strings.Join(layout.Names(), ", ")+")")
	sceneDir  = flag.String("scene-dir", layout.DefaultDir, "directory searched for layouts before the embedded copies")
	profile   = flag.Bool("profile", false, "log frame rate and memory statistics every second")
	uncapped  = flag.Bool("uncapped", false, "disable vsync")
	software  = flag.Bool("software", false, "force the fallback (software) adapter")
	frameCap  = flag.Float64("fps", 0, "render frame cap (0 = uncapped)")
)

func main() {
	flag.Parse()

	// ── Layout ──────────────────────────────────────────────────────
	spec, err := layout.LoadFrom(*sceneDir, *sceneName)
	if err != nil {
		log.Fatalf("load layout: %v", err)
	}
	cfg, err := spec.ScrollConfig()
	if err != nil {
		log.Fatalf("scroll config: %v", err)
	}

	// ── Window ──────────────────────────────────────────────────────
	win, err := window.NewWindow(window.WithTitle("oxy-scroll | " + spec.Name))
	if err != nil {
		log.Fatalf("open window: %v", err)
	}

	// ── Renderer ────────────────────────────────────────────────────
	presentMode := renderer.PresentModeVSync
	if *uncapped {
		presentMode = renderer.PresentModeUncapped
	}
	rendererOpts := []renderer.RendererBuilderOption{
		renderer.WithPresentMode(presentMode),
		renderer.WithMSAA(renderer.MSAA4x),
		renderer.WithForceSoftwareRenderer(*software),
		renderer.WithClearColor(0, 0, 0),
	}
	if spec.Camera.PointSize > 0 {
		rendererOpts = append(rendererOpts, renderer.WithPointSize(float32(spec.Camera.PointSize)))
	}
	r, err := renderer.NewRenderer(win.SurfaceDescriptor(), win.Width(), win.Height(), rendererOpts...)
	if err != nil {
		log.Fatalf("create renderer: %v", err)
	}
	defer r.Release()

	// ── Camera + Scroll ─────────────────────────────────────────────
	ctrl := camera.NewScrollController(cfg)
	cam := camera.NewCamera(append(spec.CameraOptions(), camera.WithController(ctrl))...)

	eng, err := engine.NewEngine(
		engine.WithProfiling(*profile),
		engine.WithTickRate(60),
		engine.WithRenderFrameLimit(*frameCap),
		engine.WithWindow(win),
		engine.WithRenderer(r),
		engine.WithCamera(cam),
		engine.WithScrollController(ctrl),
		engine.WithTracker(scroll.NewTracker(spec.TrackerOptions(cfg)...)),
		engine.WithField(starfield.NewField(spec.StarOptions()...)),
		engine.WithTitleStatus("oxy-scroll | "+spec.Name),
	)
	if err != nil {
		log.Fatalf("create engine: %v", err)
	}

	fmt.Println("╔══════════════════════════════════════════════════════╗")
	fmt.Println("║  oxy-scroll - Star Field                             ║")
	fmt.Println("╠══════════════════════════════════════════════════════╣")
	fmt.Println("║  Scroll=Move   Up/Down=Line   PgUp/PgDn/Space=Page   ║")
	fmt.Println("║  Home/End=Top/Bottom   Esc=Quit                      ║")
	fmt.Println("╚══════════════════════════════════════════════════════╝")

	log.Printf("Starting scene %q (pivot limit %.1f, page length %.0f)", spec.Name, cfg.PivotLimit(), eng.Tracker().PageLength())
	if err := eng.Run(); err != nil {
		log.Fatalf("run: %v", err)
	}
}
