package core

// EntityID is a dense identifier for an entity within a single dataset.
// It is the entity's position in load order and doubles as the node id of
// the similarity graph.
type EntityID uint32

// MaxEntityID is the maximum possible value for an EntityID.
const MaxEntityID = ^EntityID(0)
