// Package game implements the match state machine for one backgammon game.
//
// Two machines run side by side. The single-game machine (SG) follows the
// checker play: opening roll, in play, to roll, end of game. The cube-game
// machine (CB) follows the doubling cube: opening, in play, cube action, cube
// response, to roll, end of game. Each state is a plain value type; a
// transition is a method that exists only on the states that support it and
// returns a new state, so calling doDouble on a to-roll state does not
// compile.
//
// CubeGame pairs the two machines and Coordinator.Apply drives them from a
// single event stream, keeping cube actions interleaved with checker play.
//
// Colors: the absolute board is White's view. For the opening roll Dice1 is
// White's die and Dice2 is Red's.
package game
