package component

// MainCameraTag marks the camera the player looks through.
type MainCameraTag struct{}

var MainCameraTagComponent = NewComponent[MainCameraTag]()

// Keep marks entities that survive level teardown.
type Keep struct{}

var KeepComponent = NewComponent[Keep]()

// LaserTag marks the beam entity owned by a blaster.
type LaserTag struct{}

var LaserTagComponent = NewComponent[LaserTag]()

// Prop names a placed decoration from the props table.
type Prop struct {
	Name string
}

var PropComponent = NewComponent[Prop]()
