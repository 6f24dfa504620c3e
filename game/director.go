package game

// Director plays a board automatically, one step at a time.
type Director interface {
	// Init prepares the director to play board
	Init(*Board)

	// Act performs a single step. It returns false once there is nothing
	// left to do.
	Act() bool

	// End releases the board
	End()
}

// Direct runs director on board until it stops acting or maxSteps is
// reached, and returns the number of steps taken.
func Direct(board *Board, director Director, maxSteps int) int {
	director.Init(board)
	defer director.End()

	steps := 0
	for steps < maxSteps && !board.IsGameOver() {
		if !director.Act() {
			break
		}
		steps++
	}
	return steps
}
