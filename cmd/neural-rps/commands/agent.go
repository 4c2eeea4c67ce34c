package commands

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/ZachBeta/neural-rps/internal/application/advisor"
)

// Flag variables for the agent command
var (
	agentModel string
	agentState string
)

// AgentCmd selects a move for a serialized board state.
var AgentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Choose a move for a serialized game state",
	Long: `Choose a (card, position) move for the board-placement game.

The state string is key:value pairs joined by '|', for example:

  Board:R.s......|Hand1:PS|Hand2:rp|Current:1

With --model the move comes from the trained network; without one, or
when the model fails to load, a uniform-random legal move is chosen.
The move is printed as cardIndex:position.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if agentState == "" {
			return fmt.Errorf("game state not provided")
		}

		a := advisor.New(log, rand.New(rand.NewSource(time.Now().UnixNano())))

		move, err := a.ChooseMove(agentModel, agentState)
		if err != nil {
			return err
		}

		fmt.Printf("%d:%d\n", move.CardIndex, move.Position)
		return nil
	},
}

func init() {
	AgentCmd.Flags().StringVarP(&agentModel, "model", "m", "", "Path to the model file")
	AgentCmd.Flags().StringVarP(&agentState, "state", "s", "", "Game state string")
}
