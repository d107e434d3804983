package entity

const (
	StatusSetup      = "setup"
	StatusInProgress = "in_progress"
	StatusFinished   = "finished"
)

const (
	GameBattleship  = "battleship"
	GameConnectFour = "connectfour"
	GameTicTacToe   = "tictactoe"
)
