/*
Package megaverse builds a target map of astral objects on a remote megaverse
API.

A map is a grid of cells. Each cell is empty space, a POLYANET, a coloured
SOLOON or a directed COMETH. Building a map runs three steps:

  - Validate checks the grid shape and the placement rule: every soloon must
    touch a polyanet horizontally or vertically.
  - Compile turns the grid into an ordered list of create (or, in clear mode,
    delete) commands, one per non-empty cell, in row-major order.
  - Dispatch sends the commands one at a time through a Gateway, retrying
    failures with exponential backoff and stopping the whole queue when a
    command exhausts its attempts.

# Usage

	gw := megahttp.New(megahttp.Config{
		BaseURL:     "https://challenge.crossmint.io/api/",
		CandidateID: "your-candidate-id",
		Delay:       750 * time.Millisecond,
	})

	res, err := megaverse.New(gw).Build(ctx, grid, domain.ModeNormal)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%d/%d commands succeeded\n", res.Summary.Succeeded, res.Summary.Total)

The memory adapter (pkg/adapters/memory) implements the same Gateway
in-process and is what `megaverse run --dry-run` uses.
*/
package megaverse
