package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/arian/airdrum/internal/app"
	"github.com/arian/airdrum/internal/audio"
)

func main() {
	cameraID := flag.Int("camera", 0, "capture device ID")
	assetsDir := flag.String("assets", "", "assets directory (auto-detected when empty)")
	minArea := flag.Int("min-area", 0, "minimum blob area in pixels (0 = default)")
	cooldown := flag.Duration("cooldown", 0, "per-pad strike cooldown (0 = default)")
	noMirror := flag.Bool("no-mirror", false, "disable horizontal mirroring of the camera feed")
	flag.Parse()

	fmt.Println("Air Drum Kit - webcam drum set")

	assets := *assetsDir
	if assets == "" {
		assets = findAssetsDir()
	}
	if assets == "" {
		log.Println("No assets directory found; using synthesized sounds and placeholder pads")
	} else {
		fmt.Printf("Using assets from: %s\n", assets)
	}

	application, err := app.New(app.Config{
		CameraID:  *cameraID,
		AssetsDir: assets,
		MinArea:   *minArea,
		Cooldown:  *cooldown,
		Mirror:    !*noMirror,
	})
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	sampler := audio.NewSampler()
	if err := sampler.Initialize(); err != nil {
		log.Printf("Audio unavailable (%v), running silent", err)
	}
	defer sampler.Close()

	var sounds []string
	for _, pad := range application.Layout().Pads() {
		sounds = append(sounds, pad.Sound)
	}
	sampler.Load(filepath.Join(assets, "Samples"), sounds)

	application.SetPlayer(sampler)

	if err := application.Run(); err != nil {
		log.Fatalf("Pipeline failed: %v", err)
	}
}

// findAssetsDir searches for the assets directory in common locations.
// It checks "assets", "../assets", "../../assets", and ~/.airdrum/assets.
// Returns the first existing directory or empty string if none found.
func findAssetsDir() string {
	relativePaths := []string{"assets", "../assets", "../../assets"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			if absPath, err := filepath.Abs(p); err == nil {
				return absPath
			}
			return p
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeAssets := filepath.Join(homeDir, ".airdrum", "assets")
	if info, err := os.Stat(homeAssets); err == nil && info.IsDir() {
		return homeAssets
	}

	return ""
}
