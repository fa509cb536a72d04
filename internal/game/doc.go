// Package game runs a real-time set-matching card game.
//
// A Dealer owns the deck and a shared Table of card slots. Every Player runs
// in its own goroutine and turns key presses into tokens on the table; a
// player whose tokens complete a set of FeatureSize cards queues a claim and
// blocks until the dealer hands back a Verdict. The dealer adjudicates claims
// one at a time, in the order they were queued, and freezes the player for a
// point or a penalty.
//
// # Basic Usage
//
//	cfg := game.DefaultConfig()
//	dealer, err := game.NewDealer(cfg, display, quartz.NewReal(), rng, logger)
//	if err != nil {
//	    return err
//	}
//	result := dealer.Run(ctx)
//	fmt.Println(result.Winners)
//
// Human key presses are routed with Dealer.OnInput; computer players feed
// themselves from a random generator.
//
// # Rounds
//
// A round starts when cards are dealt and lasts TurnTimeout. Once it expires
// every card goes back to the deck, the deck is shuffled and a fresh table
// is dealt. The game ends when no set can be formed from the cards still in
// play, or when the context passed to Run is cancelled.
//
// # Concurrency
//
// A single mutex on the Table guards the card mappings, the token lists and
// the claim queue. Display callbacks for table changes run while that lock
// is held, so a Display must never call back into the Table.
package game
