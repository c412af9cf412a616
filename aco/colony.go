package aco

import (
	"context"
	"math"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

type Option func(c *Colony)

// Colony sends one ant per vehicle through the problem each iteration and
// keeps the best solution found. It owns its pheromone matrix.
type Colony struct {
	problem     Problem
	pheromone   *mat.Dense
	alpha       float64 // Pheromone influence
	beta        float64 // Travel time influence
	evaporation float64
	iterations  int
	r           *rand.Rand
}

// Solution lists one route per used vehicle. Routes hold customers only; every
// route starts and ends at the depot.
type Solution struct {
	Routes   [][]int
	Times    []float64
	Total    float64
	Unserved []int // Customers no vehicle could take
}

func (s Solution) Vehicles() int {
	return len(s.Routes)
}

// better orders solutions by served customers, then vehicles, then time.
func (s Solution) better(other Solution) bool {
	if len(s.Unserved) != len(other.Unserved) {
		return len(s.Unserved) < len(other.Unserved)
	}
	if s.Vehicles() != other.Vehicles() {
		return s.Vehicles() < other.Vehicles()
	}
	return s.Total < other.Total
}

func WithIterations(n int) Option {
	return func(c *Colony) {
		if n > 0 {
			c.iterations = n
		}
	}
}

func WithAlpha(alpha float64) Option {
	return func(c *Colony) {
		if alpha >= 0 {
			c.alpha = alpha
		}
	}
}

func WithBeta(beta float64) Option {
	return func(c *Colony) {
		if beta >= 0 {
			c.beta = beta
		}
	}
}

func WithEvaporation(rate float64) Option {
	return func(c *Colony) {
		if rate > 0 && rate < 1 {
			c.evaporation = rate
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(c *Colony) {
		c.r = rand.New(rand.NewSource(seed))
	}
}

func NewColony(problem Problem, options ...Option) (*Colony, error) {
	if err := problem.Validate(); err != nil {
		return nil, err
	}

	n := problem.Nodes()
	pheromone := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			pheromone.Set(i, j, 1.0)
		}
	}

	c := &Colony{ // Default values
		problem:     problem,
		pheromone:   pheromone,
		alpha:       1,
		beta:        1,
		evaporation: 0.1,
		iterations:  2000,
		r:           rand.New(rand.NewSource(1)),
	}
	for _, option := range options {
		option(c)
	}
	return c, nil
}

// Pheromone returns a copy of the current trail levels.
func (c *Colony) Pheromone() *mat.Dense {
	return mat.DenseCopyOf(c.pheromone)
}

// Solve runs the configured number of iterations. Cancelling ctx stops early
// and returns the best solution so far together with the context error.
func (c *Colony) Solve(ctx context.Context) (Solution, error) {
	var best Solution
	found := false
	for iter := 0; iter < c.iterations; iter++ {
		if err := ctx.Err(); err != nil {
			return best, err
		}

		solution := c.construct()
		if !found || solution.better(best) {
			best = solution
			found = true
		}
		c.updatePheromones(solution)

		log.Debug().Msgf("iteration %d: total time %.1f with %d vehicles, best %.1f with %d vehicles",
			iter+1, solution.Total, solution.Vehicles(), best.Total, best.Vehicles())
	}

	log.Info().Msgf("best solution: total time %.1f with %d vehicles", best.Total, best.Vehicles())
	return best, nil
}

// construct sends one ant per vehicle. Each ant extends its route with a
// customer that still fits its remaining capacity until none does.
func (c *Colony) construct() Solution {
	n := c.problem.Nodes()
	visited := make([]bool, n)
	visited[Depot] = true
	remaining := n - 1

	var solution Solution
	for v := 0; v < c.problem.Vehicles && remaining > 0; v++ {
		current, load := Depot, 0
		var route []int
		for remaining > 0 {
			next := c.selectNext(current, visited, load)
			if next < 0 {
				break
			}
			route = append(route, next)
			visited[next] = true
			load += c.problem.Demand[next]
			current = next
			remaining--
		}
		if len(route) == 0 {
			break
		}
		t := c.problem.routeTime(route)
		solution.Routes = append(solution.Routes, route)
		solution.Times = append(solution.Times, t)
		solution.Total += t
	}

	for i := 1; i < n; i++ {
		if !visited[i] {
			solution.Unserved = append(solution.Unserved, i)
		}
	}
	return solution
}

// selectNext picks an unvisited customer with probability proportional to
// pheromone^alpha * (1/time)^beta, or -1 when no customer fits.
func (c *Colony) selectNext(current int, visited []bool, load int) int {
	n := c.problem.Nodes()
	weights := make([]float64, n)
	sum := 0.0
	for i := 1; i < n; i++ {
		if visited[i] || load+c.problem.Demand[i] > c.problem.Capacity {
			continue
		}
		weights[i] = math.Pow(c.pheromone.At(current, i), c.alpha) *
			math.Pow(1/c.problem.Time.At(current, i), c.beta)
		sum += weights[i]
	}
	if sum == 0 {
		return -1
	}

	r := c.r.Float64() * sum
	last := -1
	for i := 1; i < n; i++ {
		if weights[i] == 0 {
			continue
		}
		last = i
		r -= weights[i]
		if r < 0 {
			return i
		}
	}
	return last
}

// updatePheromones evaporates every trail, then lets each route deposit
// 1/time on the edges it used, depot legs included, in both directions.
func (c *Colony) updatePheromones(solution Solution) {
	c.pheromone.Scale(1-c.evaporation, c.pheromone)

	for k, route := range solution.Routes {
		deposit := 1 / solution.Times[k]
		prev := Depot
		for _, node := range route {
			c.deposit(prev, node, deposit)
			prev = node
		}
		c.deposit(prev, Depot, deposit)
	}
}

func (c *Colony) deposit(i, j int, amount float64) {
	c.pheromone.Set(i, j, c.pheromone.At(i, j)+amount)
	c.pheromone.Set(j, i, c.pheromone.At(j, i)+amount)
}
