package component

type DoorState int

const (
	DoorClosed DoorState = iota
	DoorOpen
)

func (s DoorState) String() string {
	if s == DoorOpen {
		return "Open"
	}
	return "Closed"
}

type Door struct {
	State      DoorState
	Height     float32
	Width      float32
	Thickness  float32
	FrameWidth float32
	FrameDepth float32
	// Slider is the moving panel entity, a child of the door.
	Slider   uint64
	Duration float32
}

var DoorComponent = NewComponent[Door]()

func DefaultDoor() *Door {
	return &Door{
		Height:     2.5,
		Width:      1.5,
		Thickness:  0.2,
		FrameWidth: 0.2,
		FrameDepth: 1.1,
		Duration:   1,
	}
}

// SliderY is the panel's local height for a state.
func (d Door) SliderY(s DoorState) float32 {
	if s == DoorOpen {
		return d.Height * 1.5
	}
	return d.Height * 0.5
}
