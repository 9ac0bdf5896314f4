package cmd

import (
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/unit"
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/easyeda2kicad/pkg/easyeda"
	"github.com/OpenTraceLab/easyeda2kicad/pkg/kicad/footprint"
	"github.com/OpenTraceLab/easyeda2kicad/pkg/kicad/renderer"
)

var viewCmd = &cobra.Command{
	Use:   "view <input>",
	Short: "Preview a footprint in an interactive viewer",
	Long: `Opens a Gio window showing a footprint. The input is either a .kicad_mod
file or an EasyEDA document, which is converted first.

Controls:
  Left Click / R    - Rotate 90°
  Right Click / F   - Flip view
  Scroll Wheel      - Zoom in/out
  Space             - Fit footprint to window
  C                 - Toggle courtyard
  1                 - Copper only
  A                 - Show all layers
  Q / Escape        - Quit`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

// loadForView reads a .kicad_mod directly and converts anything else
func loadForView(cmd *cobra.Command, path string) (*footprint.Footprint, error) {
	if strings.EqualFold(filepath.Ext(path), ".kicad_mod") {
		return footprint.ParseFile(path)
	}

	doc, err := easyeda.LoadFile(path)
	if err != nil {
		return nil, err
	}
	converter, err := buildConverter(cmd, nil)
	if err != nil {
		return nil, err
	}
	fp, _, err := converter.Convert(doc)
	return fp, err
}

func runView(cmd *cobra.Command, args []string) error {
	filename := args[0]

	fp, err := loadForView(cmd, filename)
	if err != nil {
		return fmt.Errorf("error loading %s: %w", filename, err)
	}

	bbox := fp.GetBoundingBox()
	fmt.Fprintf(cmd.OutOrStdout(), "Loaded %s: %d items\n", fp.Name, len(fp.Items))

	go func() {
		w := new(app.Window)
		w.Option(app.Title("Footprint Viewer - " + fp.Name))
		w.Option(app.Size(unit.Dp(1000), unit.Dp(800)))

		if err := runViewerWindow(w, fp, bbox); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
	return nil
}

func runViewerWindow(w *app.Window, fp *footprint.Footprint, bbox footprint.BoundingBox) error {
	camera := renderer.NewCamera(1000, 800)
	fitted := false

	r := renderer.NewRenderer(appConfig.Theme())

	var tag int
	var ops op.Ops
	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err

		case app.FrameEvent:
			ops.Reset()

			gtx := layout.Context{
				Ops:         &ops,
				Constraints: layout.Exact(e.Size),
				Metric:      e.Metric,
				Now:         e.Now,
				Source:      e.Source,
			}
			camera.UpdateScreenSize(e.Size.X, e.Size.Y)
			if !fitted {
				camera.Fit(bbox)
				fitted = true
			}

			if handleViewerInput(gtx, &tag, camera, r.Layers, bbox) {
				return nil
			}

			r.Render(gtx, camera, fp)
			registerViewerArea(gtx, &tag)
			e.Frame(&ops)
		}
	}
}

// registerViewerArea makes the whole window a pointer target for tag
func registerViewerArea(gtx layout.Context, tag event.Tag) {
	area := clip.Rect(image.Rectangle{Max: gtx.Constraints.Max}).Push(gtx.Ops)
	event.Op(gtx.Ops, tag)
	area.Pop()
}

// handleViewerInput applies pending key and pointer events and reports
// whether the viewer should close. Changes are drawn by the current frame.
func handleViewerInput(gtx layout.Context, tag event.Tag, camera *renderer.Camera, layers *renderer.LayerConfig, bbox footprint.BoundingBox) bool {
	for {
		ev, ok := gtx.Event(key.Filter{})
		if !ok {
			break
		}
		if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
			if handleKeyPress(ke.Name, camera, layers, bbox) {
				return true
			}
		}
	}

	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target:  tag,
			Kinds:   pointer.Press | pointer.Scroll,
			ScrollY: pointer.ScrollRange{Min: -100, Max: 100},
		})
		if !ok {
			break
		}
		pe, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		switch pe.Kind {
		case pointer.Press:
			if pe.Buttons == pointer.ButtonPrimary {
				camera.Rotate(90)
			} else if pe.Buttons == pointer.ButtonSecondary {
				camera.Flip()
			}
		case pointer.Scroll:
			camera.ZoomAt(float64(pe.Position.X), float64(pe.Position.Y), 1.0-float64(pe.Scroll.Y)*0.1)
		}
	}
	return false
}

func handleKeyPress(k key.Name, camera *renderer.Camera, layers *renderer.LayerConfig, bbox footprint.BoundingBox) bool {
	switch k {
	case key.NameEscape, "Q":
		return true
	case "F":
		camera.Flip()
	case "R":
		camera.Rotate(90)
	case key.NameLeftArrow:
		camera.Rotate(-90)
	case key.NameSpace:
		camera.Fit(bbox)
	case "C":
		layers.Toggle("F.CrtYd")
	case "1":
		layers.ShowCopperOnly()
	case "A":
		layers.ShowAll()
	}
	return false
}
