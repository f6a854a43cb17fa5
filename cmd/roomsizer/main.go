// Command roomsizer performs a one-shot wallpaper calculation from flags,
// printing the roll count on stdout for scripting. Exit code 0 on success,
// 1 on any validation or calculation error.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/kingpin/v2"

	"github.com/Vilis322/roomsizer/internal/calculator"
	"github.com/Vilis322/roomsizer/internal/domain"
)

// Default opening sizes applied by the --windows/--doors count shorthands.
const (
	defaultWindowWidth  = 1.2
	defaultWindowHeight = 1.5
	defaultDoorWidth    = 0.9
	defaultDoorHeight   = 2.0
)

type options struct {
	width         float64
	length        float64
	height        float64
	rollWidth     float64
	rollLength    float64
	windows       []string
	doors         []string
	windowCount   int
	doorCount     int
	dropAllowance float64
	extraFactor   float64
	verbose       bool
}

func main() {
	kingpinApp := kingpin.New("roomsizer", "Calculate the number of wallpaper rolls needed for a room")

	opts := options{}
	kingpinApp.Flag("width", "Room width in meters").Required().Float64Var(&opts.width)
	kingpinApp.Flag("length", "Room length in meters").Required().Float64Var(&opts.length)
	kingpinApp.Flag("height", "Room height in meters").Required().Float64Var(&opts.height)
	kingpinApp.Flag("roll-width", "Wallpaper roll width in meters").Required().Float64Var(&opts.rollWidth)
	kingpinApp.Flag("roll-length", "Wallpaper roll length in meters").Required().Float64Var(&opts.rollLength)
	kingpinApp.Flag("window", "Window as WIDTHxHEIGHT in meters (repeatable)").StringsVar(&opts.windows)
	kingpinApp.Flag("door", "Door as WIDTHxHEIGHT in meters (repeatable)").StringsVar(&opts.doors)
	kingpinApp.Flag("windows", fmt.Sprintf("Number of default-sized windows (%.1fx%.1f m)", defaultWindowWidth, defaultWindowHeight)).Default("0").IntVar(&opts.windowCount)
	kingpinApp.Flag("doors", fmt.Sprintf("Number of default-sized doors (%.1fx%.1f m)", defaultDoorWidth, defaultDoorHeight)).Default("0").IntVar(&opts.doorCount)
	kingpinApp.Flag("drop-allowance", "Drop allowance per strip in meters").Default("0").Float64Var(&opts.dropAllowance)
	kingpinApp.Flag("extra-factor", "Extra waste factor multiplier").Default("1.0").Float64Var(&opts.extraFactor)
	kingpinApp.Flag("verbose", "Also print wall area, net wall area, and perimeter").Short('v').BoolVar(&opts.verbose)

	kingpin.MustParse(kingpinApp.Parse(os.Args[1:]))

	os.Exit(run(opts, os.Stdout, os.Stderr))
}

func run(opts options, stdout, stderr io.Writer) int {
	room, err := domain.NewRoom(opts.width, opts.length, opts.height)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	openings, err := collectOpenings(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	for _, o := range openings {
		if err := room.AddOpening(o); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}

	policy, err := domain.NewWastePolicy(opts.dropAllowance, opts.extraFactor)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	wallpaper, err := calculator.NewWallpaper(opts.rollWidth, opts.rollLength, room, policy)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	rolls, err := wallpaper.RollsNeeded()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if opts.verbose {
		netArea, err := room.NetWallArea()
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "Wall area: %.2f m2\n", room.WallArea())
		fmt.Fprintf(stdout, "Net wall area: %.2f m2\n", netArea)
		fmt.Fprintf(stdout, "Perimeter: %.2f m\n", room.Perimeter())
		fmt.Fprintf(stdout, "Rolls needed: %d\n", rolls)
		return 0
	}

	fmt.Fprintf(stdout, "%d\n", rolls)
	return 0
}

func collectOpenings(opts options) ([]domain.Opening, error) {
	openings := make([]domain.Opening, 0, len(opts.windows)+len(opts.doors)+opts.windowCount+opts.doorCount)

	for _, spec := range opts.windows {
		o, err := parseOpening(spec, domain.KindWindow)
		if err != nil {
			return nil, err
		}
		openings = append(openings, o)
	}
	for _, spec := range opts.doors {
		o, err := parseOpening(spec, domain.KindDoor)
		if err != nil {
			return nil, err
		}
		openings = append(openings, o)
	}

	for i := 0; i < opts.windowCount; i++ {
		o, err := domain.NewOpening(defaultWindowWidth, defaultWindowHeight, domain.KindWindow)
		if err != nil {
			return nil, err
		}
		openings = append(openings, o)
	}
	for i := 0; i < opts.doorCount; i++ {
		o, err := domain.NewOpening(defaultDoorWidth, defaultDoorHeight, domain.KindDoor)
		if err != nil {
			return nil, err
		}
		openings = append(openings, o)
	}

	return openings, nil
}

// parseOpening parses a WIDTHxHEIGHT spec such as "1.2x1.5". Both a lowercase
// x and an uppercase X are accepted as the separator.
func parseOpening(spec string, kind domain.OpeningKind) (domain.Opening, error) {
	normalized := strings.ToLower(strings.TrimSpace(spec))
	parts := strings.Split(normalized, "x")
	if len(parts) != 2 {
		return domain.Opening{}, fmt.Errorf("invalid %s spec %q, expected WIDTHxHEIGHT", kind, spec)
	}

	width, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return domain.Opening{}, fmt.Errorf("invalid %s width in %q: %w", kind, spec, err)
	}
	height, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return domain.Opening{}, fmt.Errorf("invalid %s height in %q: %w", kind, spec, err)
	}

	return domain.NewOpening(width, height, kind)
}
