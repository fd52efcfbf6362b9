package main

import (
	"fmt"
	"os"
	"strings"

	"cribbage-go/internal/game/common"
	"cribbage-go/internal/game/cribbage"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
)

const botName = "Skunk"

func main() {
	pterm.Print("\n")
	title, err := pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("Crib", pterm.FgRed.ToStyle()),
		putils.LettersFromStringWithStyle("bage", pterm.FgDarkGray.ToStyle()),
	).Srender()
	if err == nil {
		pterm.Print(title)
	}

	name, _ := pterm.DefaultInteractiveTextInput.
		WithDefaultText("Enter your name").
		WithDefaultValue("Player").
		Show()
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Player"
	}

	st := cribbage.NewGame(name, botName)
	pterm.Info.Printfln("First to %d wins. %s deals; you throw to the crib and lead the play.", cribbage.MaxScore, botName)

	for {
		switch st.Phase {
		case cribbage.PhaseDiscarding:
			st = runDiscarding(st)
		case cribbage.PhasePlaying:
			st = runPlaying(st)
		case cribbage.PhaseCounting:
			st = runCounting(st)
		case cribbage.PhaseDealing:
			printScores(st)
			if !askYes("Deal the next hand?") {
				pterm.Info.Println("Thanks for playing.")
				return
			}
			next, err := st.Deal()
			if err != nil {
				fail(err)
			}
			st = next
		case cribbage.PhaseGameOver:
			printGameOver(st)
			if !askYes("Play again?") {
				return
			}
			st = cribbage.NewGame(name, botName)
		}
	}
}

func runDiscarding(st cribbage.State) cribbage.State {
	seat := st.Current
	if seat == cribbage.Dealer {
		hand := st.Players[cribbage.Dealer].Hand
		_, b, err := cribbage.ChooseDiscard(hand, true)
		if err != nil {
			fail(err)
		}
		next, err := st.Discard(cribbage.Dealer, b)
		if err != nil {
			fail(err)
		}
		pterm.Printfln("%s throws a card to the crib.", st.Players[cribbage.Dealer].Name)
		return next
	}

	hand := st.Players[cribbage.NonDealer].Hand
	left := st.DiscardCountFor(cribbage.NonDealer)
	pterm.Println()
	pterm.Info.Printfln("Throw %d more to %s's crib.", left, st.Players[cribbage.Dealer].Name)
	idx := pickCard("Choose a card for the crib", hand)
	next, err := st.Discard(cribbage.NonDealer, idx)
	if err != nil {
		fail(err)
	}
	if next.Phase == cribbage.PhasePlaying {
		pterm.Success.Printfln("Crib complete. Cut card: %s. Your lead.", next.Cut)
	}
	return next
}

func runPlaying(st cribbage.State) cribbage.State {
	seat := st.Current
	if seat == cribbage.Dealer {
		idx, ok := cribbage.ChoosePlay(
			st.Players[cribbage.Dealer].Hand,
			st.Count,
			st.Played[st.RoundStart:],
		)
		if !ok {
			next, err := st.Go(cribbage.Dealer)
			if err != nil {
				fail(err)
			}
			pterm.Printfln("%s says go. You peg 1.", st.Players[cribbage.Dealer].Name)
			return next
		}
		next, res, err := st.PlayCard(cribbage.Dealer, idx)
		if err != nil {
			fail(err)
		}
		announcePlay(st.Players[cribbage.Dealer].Name, res)
		return next
	}

	hand := st.Players[cribbage.NonDealer].Hand
	pterm.Println()
	pterm.Printfln("Count: %s   Played: %s", pterm.LightCyan(fmt.Sprint(st.Count)), cardList(st.Played[st.RoundStart:]))

	if !st.CanPlay(cribbage.NonDealer) {
		pterm.Warning.Println("No legal play. Go!")
		next, err := st.Go(cribbage.NonDealer)
		if err != nil {
			fail(err)
		}
		return next
	}

	for {
		idx := pickCard("Play a card", hand)
		next, res, err := st.PlayCard(cribbage.NonDealer, idx)
		if err != nil {
			pterm.Error.Printfln("%v", err)
			continue
		}
		announcePlay("You", res)
		return next
	}
}

func runCounting(st cribbage.State) cribbage.State {
	seat := st.Current
	if seat == cribbage.NonDealer {
		kept := st.Kept[cribbage.NonDealer]
		next, res, err := st.CountHand(cribbage.NonDealer)
		if err != nil {
			fail(err)
		}
		pterm.Println()
		pterm.Success.Printfln("Your hand %s with cut %s scores %d.", cardList(kept), st.Cut, res.Hand.Total)
		printBreakdown(res.Hand)
		return next
	}

	kept := st.Kept[cribbage.Dealer]
	crib := st.Crib
	next, res, err := st.CountHand(cribbage.Dealer)
	if err != nil {
		fail(err)
	}
	pterm.Printfln("%s's hand %s scores %d.", st.Players[cribbage.Dealer].Name, cardList(kept), res.Hand.Total)
	if res.Crib != nil {
		pterm.Printfln("%s's crib %s scores %d.", st.Players[cribbage.Dealer].Name, cardList(crib), res.Crib.Total)
	}
	return next
}

func announcePlay(who string, res cribbage.PlayResult) {
	line := fmt.Sprintf("%s played %s. Count: %d.", who, res.Card, res.Count)
	if res.Points > 0 {
		line += fmt.Sprintf(" +%d (%s)", res.Points, strings.Join(res.Reasons, ", "))
		pterm.Success.Println(line)
		return
	}
	pterm.Println(line)
}

func printBreakdown(sb cribbage.ScoreBreakdown) {
	rows := [][]string{{"Fifteens", fmt.Sprint(sb.Fifteens)}}
	rows = append(rows,
		[]string{"Pairs", fmt.Sprint(sb.Pairs)},
		[]string{"Runs", fmt.Sprint(sb.Runs)},
		[]string{"Flush", fmt.Sprint(sb.Flush)},
		[]string{"Nobs", fmt.Sprint(sb.Nobs)},
		[]string{"Total", fmt.Sprint(sb.Total)},
	)
	_ = pterm.DefaultTable.WithData(rows).Render()
}

func printScores(st cribbage.State) {
	pterm.Println()
	pterm.Printfln("Scores: %s %s  |  %s %s",
		st.Players[0].Name, pterm.LightGreen(fmt.Sprint(st.Players[0].Score)),
		st.Players[1].Name, pterm.LightRed(fmt.Sprint(st.Players[1].Score)),
	)
}

func printGameOver(st cribbage.State) {
	winner := st.Winner()
	printScores(st)
	if winner == cribbage.NonDealer {
		pterm.Success.Printfln("%s wins!", st.Players[winner].Name)
		return
	}
	pterm.Error.Printfln("%s wins. Better luck next game.", st.Players[winner].Name)
}

func cardList(cards []common.Card) string {
	if len(cards) == 0 {
		return "-"
	}
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

func pickCard(prompt string, hand []common.Card) int {
	options := make([]string, len(hand))
	for i, c := range hand {
		options[i] = c.String()
	}
	choice, _ := pterm.DefaultInteractiveSelect.
		WithDefaultText(prompt).
		WithOptions(options).
		Show()
	for i, o := range options {
		if o == choice {
			return i
		}
	}
	return 0
}

func askYes(prompt string) bool {
	choice, _ := pterm.DefaultInteractiveSelect.
		WithDefaultText(prompt).
		WithOptions([]string{"Yes", "No"}).
		Show()
	return choice == "Yes"
}

func fail(err error) {
	pterm.Error.Printfln("unexpected game error: %v", err)
	os.Exit(1)
}
