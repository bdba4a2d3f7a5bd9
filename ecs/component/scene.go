package component

import "github.com/milk9111/reactor/spatial"

// SceneBVH holds the acceleration structure rebuilt each frame from enabled
// colliders. Item ids are entity handles.
type SceneBVH struct {
	Tree *spatial.BVH
}

var SceneBVHComponent = NewComponent[SceneBVH]()
