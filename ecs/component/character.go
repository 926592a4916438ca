package component

import "github.com/milk9111/strider/controller"

// Character is the tuning an entity was built with. Prefab is the file it
// came from, so a reload can find the entities it affects.
type Character struct {
	Name   string
	Prefab string
	Config controller.Config
}

var CharacterComponent = NewComponent[Character]()
