// meta/meta.go
package meta

// MINIMAX_DEPTH is the default search depth for plain minimax self-play.
const MINIMAX_DEPTH = 7

// ALPHA_BETA_DEPTH is the default search depth against a human.
const ALPHA_BETA_DEPTH = 3

// MAX_MOVES bounds a game: one placement per initially empty square.
const MAX_MOVES = 60

// INFINITY is larger than any board evaluation can reach.
const INFINITY = 1000000

// CACHE_LIMIT caps transposition entries before the table is cleared.
const CACHE_LIMIT = 1 << 20

// GO_ROUTINES defines the number of games an experiment plays at once.
const GO_ROUTINES = 8
