package config

import "time"

const (
	WindowWidth  = 1024
	WindowHeight = 768

	// Electron cloud
	FineStructure       = 137 // batch size, floor and multiplier for the defaults below
	InitialElectrons    = 20 * FineStructure
	InitialPerspective  = 10 * FineStructure
	MinPerspective      = 20
	MaxPerspective      = 5000
	ZoomInFactor        = 0.95
	ZoomOutFactor       = 1.05
	MaxElectronSpeed    = 0.0015
	MinElectronSpeed    = 0.0003
	ElectronSize        = 1.5
	NucleusDisplayScale = 0.95

	// Button dimensions
	ButtonWidth  = 120
	ButtonHeight = 32
	ButtonX      = 20
	ButtonY      = 40

	// Shell link list
	LinkX       = 20
	LinkY       = 130
	LinkWidth   = 120
	LinkHeight  = 22
	LinkSpacing = 4

	// Comments
	DefaultAPIURL      = "https://one137.dev/comments-api"
	MaxMessageLength   = 5000
	MaxAuthorLength    = 50
	NavigationDebounce = 100 * time.Millisecond
	RequestTimeout     = 10 * time.Second
	DateLayout         = "Jan 2, 2006"
)

// OrbitRadii are the Bohr radius and the next four hydrogen orbits, in picometers.
var OrbitRadii = [...]float64{53, 212, 477, 848, 1325}

// OrbitColors holds one display color per shell.
var OrbitColors = [...]string{"#ef7383", "#efa983", "#efef93", "#73d6df", "#537cef"}

// ShellCount is the number of concentric shells.
const ShellCount = len(OrbitRadii)
