// Package command parses the prompt commands typed into the terminal client.
package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/palemoky/stellar-empires/internal/order"
)

// Action says what the model should do with a parsed command.
type Action int

const (
	ActionIssue Action = iota
	ActionRescind
	ActionSend
	ActionEnd
	ActionQuit
	ActionHelp
)

// QueueEnd appends a tech to the end of the research queue.
const QueueEnd = -1

var (
	ErrEmpty   = errors.New("empty command")
	ErrUnknown = errors.New("unknown command")
	ErrUsage   = errors.New("wrong arguments")
)

// Command is one parsed prompt line. Details is set for ActionIssue and
// OrderID for ActionRescind.
type Command struct {
	Action  Action
	Details order.Details
	OrderID int
}

// Usage lists every command with its arguments.
var Usage = []string{
	"move <fleet> <system>",
	"rename <object> <name>",
	"colonize <planet> <ship>",
	"scrap <object>",
	"research <tech> [position]",
	"produce <item> <location>",
	"rescind <order>",
	"send",
	"end",
	"quit",
	"help",
}

// Parse turns a prompt line into a Command.
func Parse(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, ErrEmpty
	}
	name, args := strings.ToLower(fields[0]), fields[1:]

	switch name {
	case "move":
		ids, err := ints(name, args, 2)
		if err != nil {
			return Command{}, err
		}
		return issue(order.FleetMove{Fleet: ids[0], Destination: ids[1]}), nil
	case "rename":
		if len(args) < 2 {
			return Command{}, usage(name)
		}
		obj, err := strconv.Atoi(args[0])
		if err != nil {
			return Command{}, usage(name)
		}
		return issue(order.Rename{Object: obj, Name: strings.Join(args[1:], " ")}), nil
	case "colonize":
		ids, err := ints(name, args, 2)
		if err != nil {
			return Command{}, err
		}
		return issue(order.Colonize{Planet: ids[0], Ship: ids[1]}), nil
	case "scrap":
		ids, err := ints(name, args, 1)
		if err != nil {
			return Command{}, err
		}
		return issue(order.Scrap{Object: ids[0]}), nil
	case "research":
		return parseResearch(args)
	case "produce":
		if len(args) != 2 {
			return Command{}, usage(name)
		}
		loc, err := strconv.Atoi(args[1])
		if err != nil {
			return Command{}, usage(name)
		}
		return issue(order.ProductionQueue{Item: args[0], Location: loc}), nil
	case "rescind":
		ids, err := ints(name, args, 1)
		if err != nil {
			return Command{}, err
		}
		return Command{Action: ActionRescind, OrderID: ids[0]}, nil
	case "send":
		return Command{Action: ActionSend}, nil
	case "end":
		return Command{Action: ActionEnd}, nil
	case "quit", "exit":
		return Command{Action: ActionQuit}, nil
	case "help", "?":
		return Command{Action: ActionHelp}, nil
	}
	return Command{}, fmt.Errorf("%w: %s", ErrUnknown, name)
}

func parseResearch(args []string) (Command, error) {
	switch len(args) {
	case 1:
		return issue(order.ResearchQueue{Tech: args[0], Position: QueueEnd}), nil
	case 2:
		pos, err := strconv.Atoi(args[1])
		if err != nil || pos < 0 {
			return Command{}, usage("research")
		}
		return issue(order.ResearchQueue{Tech: args[0], Position: pos}), nil
	}
	return Command{}, usage("research")
}

func issue(d order.Details) Command {
	return Command{Action: ActionIssue, Details: d}
}

func ints(name string, args []string, n int) ([]int, error) {
	if len(args) != n {
		return nil, usage(name)
	}
	out := make([]int, n)
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, usage(name)
		}
		out[i] = v
	}
	return out, nil
}

func usage(name string) error {
	for _, u := range Usage {
		if strings.HasPrefix(u, name+" ") {
			return fmt.Errorf("%w: usage %s", ErrUsage, u)
		}
	}
	return fmt.Errorf("%w: %s", ErrUsage, name)
}
