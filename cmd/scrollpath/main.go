package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/Carmen-Shannon/oxy-scroll/engine/layout"
	"github.com/Carmen-Shannon/oxy-scroll/engine/sampler"
)

var (
	sceneName = flag.String("scene", "solar", "layout to sample ("+strings.Join(layout.Names(), ", ")+")")
	sceneDir  = flag.String("scene-dir", layout.DefaultDir, "directory searched for layouts before the embedded copies")
	from      = flag.Float64("from", 0, "first scroll offset")
	to        = flag.Float64("to", 0, "last scroll offset (0 = the layout's page length)")
	step      = flag.Float64("step", 1, "distance between samples")
	out       = flag.String("out", "", "write samples as CSV to this file (- for stdout)")
	workers   = flag.Int("workers", 0, "sampling workers (0 = one per spare CPU)")
	watch     = flag.Bool("watch", false, "re-sample whenever the layout file changes")
)

func main() {
	flag.Parse()

	var opts []sampler.SamplerBuilderOption
	if *workers > 0 {
		opts = append(opts, sampler.WithWorkers(*workers))
	}
	s := sampler.NewSampler(opts...)

	if err := run(s); err != nil {
		log.Printf("[ScrollPath] %v", err)
		if !*watch {
			os.Exit(1)
		}
	}
	if !*watch {
		return
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	if err := watchLayout(s, *sceneDir, sigCh); err != nil {
		log.Printf("[ScrollPath] not watching %s: %v", *sceneDir, err)
	}
}

// watchLayout re-samples each time the sampled layout changes in dir, until stop fires or the
// watcher closes. A directory that cannot be watched (the layout came from the embedded copy) is
// reported as an error rather than ending the process.
func watchLayout(s sampler.Sampler, dir string, stop <-chan os.Signal) error {
	w, err := layout.NewWatcher(dir)
	if err != nil {
		return err
	}
	defer w.Close()

	log.Printf("[ScrollPath] watching %s for changes to %q", dir, *sceneName)
	for {
		select {
		case name, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !sameScene(name, *sceneName) {
				continue
			}
			log.Printf("[ScrollPath] %s changed, re-sampling", filepath.Base(name))
			if err := run(s); err != nil {
				log.Printf("[ScrollPath] %v", err)
			}
		case err, ok := <-w.Errors:
			if ok {
				log.Printf("[ScrollPath] watch error: %v", err)
			}
		case <-stop:
			return nil
		}
	}
}

// run loads the layout, samples its path and reports on it.
func run(s sampler.Sampler) error {
	spec, err := layout.LoadFrom(*sceneDir, *sceneName)
	if err != nil {
		return err
	}
	cfg, err := spec.ScrollConfig()
	if err != nil {
		return err
	}

	end := *to
	if end == 0 {
		end = -spec.PageLength(cfg)
	}

	samples, err := s.Sample(cfg, *from, end, *step)
	if err != nil {
		return fmt.Errorf("sample %s: %w", spec.Name, err)
	}
	sampler.Analyze(cfg, samples).Log()

	switch *out {
	case "":
		return nil
	case "-":
		return sampler.WriteCSV(os.Stdout, samples)
	default:
		f, err := os.Create(*out)
		if err != nil {
			return err
		}
		if err := sampler.WriteCSV(f, samples); err != nil {
			_ = f.Close()
			return err
		}
		log.Printf("[ScrollPath] wrote %d samples to %s", len(samples), *out)
		return f.Close()
	}
}

// sameScene reports whether a changed file is the layout being sampled.
func sameScene(changed, scene string) bool {
	base := strings.TrimSuffix(filepath.Base(changed), filepath.Ext(changed))
	want := strings.TrimSuffix(filepath.Base(scene), filepath.Ext(scene))
	return base == want
}
