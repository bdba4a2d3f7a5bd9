package component

type DebugSettings struct {
	Overlay bool
	Physics bool
}

var DebugSettingsComponent = NewComponent[DebugSettings]()
