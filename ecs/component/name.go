package component

// Name is the prefab name an entity was built from.
type Name struct {
	Value string
}

var NameComponent = NewComponent[Name]()
