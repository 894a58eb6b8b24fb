package usecase_minigame

import "github.com/mustachio/server/internal/model"

// Bet shapes of the finger lottery, with their window width, risk on a loss
// and payout rule on a win.
const (
	LottoBetExact  = "exact"  // win on the exact total, risk 3
	LottoBetRange2 = "range2" // win on [v, v+2], risk 2
	LottoBetRange4 = "range4" // win on [v, v+4], risk 1
)

// lottoEngine: the active player bets on the total of raised fingers (0–2
// per other participant); resolution fires once every other present player
// has voted.
type lottoEngine struct{}

func (lottoEngine) init(r *model.Room) []FollowUp {
	r.MiniGame = &model.MiniGameState{
		Game:  model.GameFingerLotto,
		Lotto: &model.LottoState{Step: "betting"},
	}
	return nil
}

func (lottoEngine) apply(r *model.Room, ev Event) ([]FollowUp, error) {
	st := r.MiniGame.Lotto
	active := r.CurrentPlayerID()

	switch ev.Type {
	case EventPlaceBet:
		if ev.Actor != active {
			return nil, ErrNotAllowed
		}
		if st.Step != "betting" {
			return nil, errStale
		}
		if !validLottoBet(ev.BetType, ev.BetValue) {
			return nil, ErrInvalidEvent
		}
		st.Step = "voting"
		st.Bet = &model.LottoBet{Type: ev.BetType, Value: ev.BetValue}
		st.Votes = make(map[string]model.LottoVote)
		return nil, nil

	case EventCastFingers:
		if ev.Actor == active {
			return nil, ErrNotAllowed
		}
		if st.Step != "voting" {
			return nil, errStale
		}
		if ev.Fingers == nil || *ev.Fingers < 0 || *ev.Fingers > 2 {
			return nil, ErrInvalidEvent
		}
		if _, voted := st.Votes[ev.Actor]; voted {
			return nil, errStale
		}
		st.Votes[ev.Actor] = model.LottoVote{
			Fingers: *ev.Fingers,
			Name:    playerName(r, ev.Actor),
		}

		// Everyone but the bettor votes; players who left are not waited for.
		if len(st.Votes) >= len(presentInOrder(r))-1 {
			st.Step = "revealing"
			st.Result = resolveLotto(*st.Bet, st.Votes, len(r.Players))
		}
		return nil, nil

	default:
		return nil, ErrInvalidEvent
	}
}

func validLottoBet(betType string, value int) bool {
	switch betType {
	case LottoBetExact, LottoBetRange2, LottoBetRange4:
		return value >= 0
	default:
		return false
	}
}

// resolveLotto sums the votes and settles the bet. playerCount is the total
// number of participants, bettor included.
func resolveLotto(bet model.LottoBet, votes map[string]model.LottoVote, playerCount int) *model.LottoResult {
	total := 0
	for _, v := range votes {
		total += v.Fingers
	}

	others := playerCount - 1
	res := &model.LottoResult{TotalFingers: total}

	switch bet.Type {
	case LottoBetExact:
		res.Won = total == bet.Value
		if res.Won {
			res.Distribution = others * 2
		} else {
			res.Sips = 3
		}
	case LottoBetRange2:
		res.Won = total >= bet.Value && total <= bet.Value+2
		if res.Won {
			// ceil(others / 1.5) without touching floats
			res.Distribution = (others*2 + 2) / 3
		} else {
			res.Sips = 2
		}
	case LottoBetRange4:
		res.Won = total >= bet.Value && total <= bet.Value+4
		if res.Won {
			res.Distribution = 1
		} else {
			res.Sips = 1
		}
	}
	return res
}
