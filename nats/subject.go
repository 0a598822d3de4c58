package nats

import "fmt"

/**
For each table we listen on two subjects and publish on one.
blackjack.<code>.player2game : human move events from the app
blackjack.<code>.driver      : round triggers from the app or a driver
blackjack.<code>.game2player : state snapshots and round results to the app
*/

func Player2GameSubject(tableCode string) string {
	return fmt.Sprintf("blackjack.%s.player2game", tableCode)
}

func DriverSubject(tableCode string) string {
	return fmt.Sprintf("blackjack.%s.driver", tableCode)
}

func Game2PlayerSubject(tableCode string) string {
	return fmt.Sprintf("blackjack.%s.game2player", tableCode)
}
