package aco

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

const Depot = 0

var ErrInvalidProblem = errors.New("invalid problem")

// Problem is a capacitated vehicle routing instance. Node 0 is the depot and
// has no demand; Time holds the travel time between every pair of nodes.
type Problem struct {
	Demand   []int
	Time     *mat.Dense
	Capacity int
	Vehicles int
}

func DefaultProblem() Problem {
	return Problem{
		Demand: []int{0, 10, 15, 7, 12},
		Time: mat.NewDense(5, 5, []float64{
			0, 8, 6, 7, 3,
			8, 0, 5, 9, 4,
			6, 5, 0, 4, 2,
			7, 9, 4, 0, 5,
			3, 4, 2, 5, 0,
		}),
		Capacity: 15,
		Vehicles: 4,
	}
}

func (p Problem) Nodes() int {
	return len(p.Demand)
}

func (p Problem) Validate() error {
	n := p.Nodes()
	if n < 2 {
		return fmt.Errorf("%w: need a depot and at least one customer", ErrInvalidProblem)
	}
	if p.Time == nil {
		return fmt.Errorf("%w: missing time matrix", ErrInvalidProblem)
	}
	if r, c := p.Time.Dims(); r != n || c != n {
		return fmt.Errorf("%w: time matrix is %dx%d for %d nodes", ErrInvalidProblem, r, c, n)
	}
	if p.Capacity <= 0 || p.Vehicles <= 0 {
		return fmt.Errorf("%w: capacity and vehicles must be positive", ErrInvalidProblem)
	}
	if p.Demand[Depot] != 0 {
		return fmt.Errorf("%w: depot demand must be 0", ErrInvalidProblem)
	}
	for i := 0; i < n; i++ {
		if p.Demand[i] < 0 {
			return fmt.Errorf("%w: negative demand at node %d", ErrInvalidProblem, i)
		}
		for j := 0; j < n; j++ {
			if i != j && p.Time.At(i, j) <= 0 {
				return fmt.Errorf("%w: travel time %d->%d must be positive", ErrInvalidProblem, i, j)
			}
		}
	}
	return nil
}

// routeTime is the time of a route that starts at the depot, visits route in
// order and returns to the depot.
func (p Problem) routeTime(route []int) float64 {
	if len(route) == 0 {
		return 0
	}
	total := p.Time.At(Depot, route[0])
	for i := 1; i < len(route); i++ {
		total += p.Time.At(route[i-1], route[i])
	}
	return total + p.Time.At(route[len(route)-1], Depot)
}
