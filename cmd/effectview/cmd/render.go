package cmd

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"strconv"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/go-drift/effectview/cmd/effectview/internal/config"
	"github.com/go-drift/effectview/pkg/bitmap"
	"github.com/go-drift/effectview/pkg/imageview"
	"github.com/go-drift/effectview/pkg/logging"
	"github.com/go-drift/effectview/pkg/rendering"
	"github.com/go-drift/effectview/pkg/state"
)

func init() {
	RegisterCommand(&Command{
		Name:  "render",
		Short: "Render an image through the effects",
		Long: `Render an image through the shape, blur and progress effects and write
the result as PNG.

Input may be PNG, JPEG, GIF, BMP, TIFF or WebP. Effects are configured from
effectview.yaml in the current directory, or from the file named by
--config.

Flags:
  --in PATH         Input image (required)
  --out PATH        Output PNG (required)
  --config PATH     Config file (default: ./effectview.yaml if present)
  --width N         View width (default: image width)
  --height N        View height (default: image height)
  --state PATH      Also write the effect state as YAML`,
		Usage: "effectview render --in PATH --out PATH [--config PATH] [--width N] [--height N] [--state PATH]",
		Run:   runRender,
	})
}

type renderOptions struct {
	in, out    string
	configPath string
	statePath  string
	width      int
	height     int
}

func parseRenderArgs(args []string) (renderOptions, error) {
	var opts renderOptions
	for i := 0; i < len(args); i++ {
		if !strings.HasPrefix(args[i], "-") {
			return opts, fmt.Errorf("unexpected argument %q", args[i])
		}
		name, value, hasValue := strings.Cut(strings.TrimLeft(args[i], "-"), "=")
		if !hasValue {
			if i+1 >= len(args) {
				return opts, fmt.Errorf("--%s requires a value", name)
			}
			value = args[i+1]
			i++
		}
		switch name {
		case "in":
			opts.in = value
		case "out":
			opts.out = value
		case "config":
			opts.configPath = value
		case "state":
			opts.statePath = value
		case "width", "height":
			n, err := strconv.Atoi(value)
			if err != nil || n <= 0 {
				return opts, fmt.Errorf("--%s must be a positive integer, got %q", name, value)
			}
			if name == "width" {
				opts.width = n
			} else {
				opts.height = n
			}
		default:
			return opts, fmt.Errorf("unknown flag --%s", name)
		}
	}
	if opts.in == "" || opts.out == "" {
		return opts, fmt.Errorf("--in and --out are required\n\nUsage: effectview render --in PATH --out PATH")
	}
	return opts, nil
}

func runRender(args []string) error {
	opts, err := parseRenderArgs(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}

	src, err := decodeImage(opts.in)
	if err != nil {
		return err
	}
	w, h := opts.width, opts.height
	if w == 0 {
		w = src.Bounds().Dx()
	}
	if h == 0 {
		h = src.Bounds().Dy()
	}

	v := imageview.New(cfg.ViewOptions()...)
	defer v.Close()
	v.SetSize(w, h)
	v.SetDrawable(bitmap.NewImageDrawable(src))
	v.SetProgress(cfg.Progress.Value)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	v.Draw(rendering.NewRasterCanvas(dst))
	logging.Logger().Info("rendered", "in", opts.in, "size", dst.Rect.Size(),
		"shape", v.Shape().Mode().String(), "blur", v.Blur().Mode().String())

	if err := writePNG(opts.out, dst); err != nil {
		return err
	}
	if opts.statePath != "" {
		if err := writeState(opts.statePath, v); err != nil {
			return err
		}
	}
	fmt.Fprintf(stdout, "Wrote %s (%dx%d)\n", opts.out, w, h)
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.LoadOptional(".")
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	logging.Logger().Debug("decoded input", "path", path, "format", format, "bounds", img.Bounds())
	return img, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}

func writeState(path string, v *imageview.View) error {
	b := state.NewBundle()
	v.SaveState(b)
	data, err := b.Encode()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
