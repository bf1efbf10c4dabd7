package scene

// Rule is a kind-level depth-order constraint: every instance of Below is
// drawn before every instance of Above.
type Rule struct {
	Below ShapeSystemID
	Above ShapeSystemID
}

// OrderRules accumulates kind-level constraints for batch application, the
// usual way a scene declares its ordering once at startup.
type OrderRules struct {
	rules []Rule
}

// NewOrderRules returns an empty rule set.
func NewOrderRules() *OrderRules {
	return &OrderRules{}
}

// Add appends the constraint "below is drawn before above" and returns the
// receiver for chaining.
func (r *OrderRules) Add(below, above ShapeSystemID) *OrderRules {
	r.rules = append(r.rules, Rule{Below: below, Above: above})
	return r
}

// Rules returns the accumulated constraints in insertion order.
func (r *OrderRules) Rules() []Rule {
	out := make([]Rule, len(r.rules))
	copy(out, r.rules)
	return out
}

// ApplyGlobal inserts every rule into the group's global dependency graph and
// returns the number of edges newly added.
func (r *OrderRules) ApplyGlobal(group *Layer) int {
	added := 0
	for _, rule := range r.rules {
		if group.AddGlobalOrderDependency(SystemItem(rule.Below), SystemItem(rule.Above)) {
			added++
		}
	}
	return added
}

// ApplyLocal inserts every rule into the layer's local dependency graph and
// returns the number of edges newly added.
func (r *OrderRules) ApplyLocal(layer *Layer) int {
	added := 0
	for _, rule := range r.rules {
		if layer.AddOrderDependency(SystemItem(rule.Below), SystemItem(rule.Above)) {
			added++
		}
	}
	return added
}

// AddShapesOrderDependency declares on the layer that every instance of the
// shape kind Below is drawn before every instance of the kind Above. Returns
// true if the constraint was newly added.
func AddShapesOrderDependency[Below, Above Shape](layer *Layer) bool {
	return layer.AddOrderDependency(
		SystemItem(SystemIDOf[Below]()),
		SystemItem(SystemIDOf[Above]()),
	)
}

// RemoveShapesOrderDependency removes a kind-level constraint from the layer.
// Returns true if the constraint existed.
func RemoveShapesOrderDependency[Below, Above Shape](layer *Layer) bool {
	return layer.RemoveOrderDependency(
		SystemItem(SystemIDOf[Below]()),
		SystemItem(SystemIDOf[Above]()),
	)
}

// AddGlobalShapesOrderDependency declares a kind-level constraint in the
// group's global graph, applied to every child layer.
func AddGlobalShapesOrderDependency[Below, Above Shape](group *Layer) bool {
	return group.AddGlobalOrderDependency(
		SystemItem(SystemIDOf[Below]()),
		SystemItem(SystemIDOf[Above]()),
	)
}

// RemoveGlobalShapesOrderDependency removes a kind-level constraint from the
// group's global graph.
func RemoveGlobalShapesOrderDependency[Below, Above Shape](group *Layer) bool {
	return group.RemoveGlobalOrderDependency(
		SystemItem(SystemIDOf[Below]()),
		SystemItem(SystemIDOf[Above]()),
	)
}
