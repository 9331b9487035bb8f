// Texture preview tool - interactive view of the procedural silk textures
// with sliders, plus a PNG export path for offline use.
//
// Usage: go run ./cmd/texturepreview
//
//	go run ./cmd/texturepreview -export weave.png -size 512 -seed 7
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/silk/config"
	"github.com/pthm-cable/silk/renderer"
	"github.com/pthm-cable/silk/systems"
)

const (
	windowWidth  = 1000
	windowHeight = 640
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30
)

// TextureParams holds the generator inputs being previewed.
type TextureParams struct {
	NormalSize  int
	NormalSeed  int64
	Strength    float32
	EnvSize     int
	Environment bool // Show the environment map instead of the normal map
}

func main() {
	configPath := flag.String("config", "", "Path to config YAML file (empty = use defaults)")
	export := flag.String("export", "", "Write the normal map to this PNG and exit")
	size := flag.Int("size", 0, "Normal map size (0 = config value)")
	seed := flag.Int64("seed", -1, "Normal map seed (-1 = config value)")
	strength := flag.Float64("strength", 1, "Normal map strength")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	params := TextureParams{
		NormalSize: cfg.Textures.NormalMapSize,
		NormalSeed: cfg.Textures.NormalMapSeed,
		Strength:   float32(*strength),
		EnvSize:    cfg.Textures.EnvironmentSize,
	}
	if *size > 0 {
		params.NormalSize = *size
	}
	if *seed >= 0 {
		params.NormalSeed = *seed
	}

	if *export != "" {
		img := systems.GenerateNormalMap(params.NormalSize, params.NormalSeed, float64(params.Strength))
		if err := writePNG(*export, img); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to export: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Normal map written to: %s (%dx%d)\n", *export, params.NormalSize, params.NormalSize)
		return
	}

	preview(cfg, params)
}

func preview(cfg *config.Config, params TextureParams) {
	rl.InitWindow(windowWidth, windowHeight, "Silk Texture Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	var texture rl.Texture2D
	var current *image.RGBA
	needsRegen := true
	status := ""

	for !rl.WindowShouldClose() {
		if needsRegen {
			if texture.ID != 0 {
				rl.UnloadTexture(texture)
			}
			current = generate(params)
			texture = loadTexture(current)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		bounds := current.Bounds()
		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: float32(bounds.Dx()), Height: float32(bounds.Dy())},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("%s  %dx%d", viewName(params), bounds.Dx(), bounds.Dy()), 15, statsY, 16, rl.DarkGray)
		if status != "" {
			rl.DrawText(status, 15, statsY+20, 16, rl.DarkGray)
		}

		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Silk Textures", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		if params.Environment {
			if v := slider(panelX, &panelY, "Environment size", "64", "1024", float32(params.EnvSize), 64, 1024, "%.0f"); int(v) != params.EnvSize {
				params.EnvSize = int(v)
				needsRegen = true
			}
		} else {
			if v := slider(panelX, &panelY, "Normal map size", "64", "1024", float32(params.NormalSize), 64, 1024, "%.0f"); int(v) != params.NormalSize {
				params.NormalSize = int(v)
				needsRegen = true
			}
			if v := slider(panelX, &panelY, "Strength (relief)", "0.0", "3.0", params.Strength, 0, 3, "%.2f"); v != params.Strength {
				params.Strength = v
				needsRegen = true
			}
		}

		rl.DrawLine(int32(panelX), int32(panelY), int32(panelX)+int32(panelWidth)-20, int32(panelY), rl.LightGray)
		panelY += 15

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(params.Environment, "Normal Map", "Environment")) {
			params.Environment = !params.Environment
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Next Seed") {
			params.NormalSeed++
			needsRegen = !params.Environment
		}
		panelY += 40

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Save PNG") {
			path := fmt.Sprintf("%s_%d.png", fileStem(params), params.NormalSeed)
			if err := writePNG(path, current); err != nil {
				status = fmt.Sprintf("Save failed: %v", err)
			} else {
				status = "Saved " + path
			}
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = TextureParams{
				NormalSize: cfg.Textures.NormalMapSize,
				NormalSeed: cfg.Textures.NormalMapSeed,
				Strength:   1,
				EnvSize:    cfg.Textures.EnvironmentSize,
			}
			needsRegen = true
		}

		rl.EndDrawing()
	}

	if texture.ID != 0 {
		rl.UnloadTexture(texture)
	}
}

// slider draws a labelled slider and advances *y past it.
func slider(x float32, y *float32, label, minText, maxText string, value, lo, hi float32, format string) float32 {
	rl.DrawText(label, int32(x), int32(*y), 14, rl.Gray)
	*y += 18
	v := gui.SliderBar(
		rl.Rectangle{X: x, Y: *y, Width: float32(panelWidth - 80), Height: 20},
		minText, maxText,
		value, lo, hi,
	)
	rl.DrawText(fmt.Sprintf(format, value), int32(x+float32(panelWidth-70)), int32(*y+2), 16, rl.DarkGray)
	*y += 35
	return v
}

func generate(p TextureParams) *image.RGBA {
	if p.Environment {
		return renderer.GenerateEnvironment(p.EnvSize)
	}
	return systems.GenerateNormalMap(p.NormalSize, p.NormalSeed, float64(p.Strength))
}

func loadTexture(img *image.RGBA) rl.Texture2D {
	rlImg := rl.NewImageFromImage(img)
	defer rl.UnloadImage(rlImg)
	tex := rl.LoadTextureFromImage(rlImg)
	rl.SetTextureFilter(tex, rl.FilterBilinear)
	return tex
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func viewName(p TextureParams) string {
	if p.Environment {
		return "Environment"
	}
	return fmt.Sprintf("Normal map (seed %d)", p.NormalSeed)
}

func fileStem(p TextureParams) string {
	if p.Environment {
		return "environment"
	}
	return "normalmap"
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
