package model

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/stellar-empires/internal/client"
	"github.com/palemoky/stellar-empires/internal/protocol"
	"github.com/palemoky/stellar-empires/internal/ui/command"
	"github.com/palemoky/stellar-empires/internal/ui/common"
)

const maxOrderLines = 12

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(m.renderHeader())
	sb.WriteString("\n\n")
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderRoster(),
		" ",
		m.renderOrders(),
	))
	sb.WriteString("\n")
	if len(m.phases) > 0 {
		sb.WriteString(common.DimStyle.Render("processing: " + strings.Join(m.phases, " → ")))
		sb.WriteString("\n")
	}
	if m.showHelp {
		sb.WriteString(common.BoxStyle.Render(strings.Join(command.Usage, "\n")))
		sb.WriteString("\n")
	}
	if m.err != "" {
		sb.WriteString(common.ErrorStyle.Render(m.err))
		sb.WriteString("\n")
	} else if m.notice != "" {
		sb.WriteString(common.NoticeStyle.Render(m.notice))
		sb.WriteString("\n")
	}
	sb.WriteString(common.PromptStyle.Render(m.input.View()))
	sb.WriteString("\n")
	sb.WriteString(m.help.View(m.keys))

	return common.DocStyle.Render(sb.String())
}

func (m *Model) renderHeader() string {
	title := common.TitleStyle("STELLAR EMPIRES")

	status := m.state.String()
	switch m.state {
	case StateConnecting, StateJoining, StateReconnecting:
		status = m.spinner.View() + " " + status
	case StateDisconnected:
		status = common.ErrorStyle.Render(status)
	}

	fields := []string{title, status}
	if m.state == StateInGame {
		empire := "observer"
		if id, ok := m.app.EmpireID().Get(); ok {
			empire = fmt.Sprintf("empire %d", id)
		}
		fields = append(fields,
			fmt.Sprintf("turn %s", m.app.CurrentTurn()),
			empire,
			m.clientType.String(),
		)
		if phase, ok := m.app.Phase().Get(); ok {
			fields = append(fields, "phase: "+phase.String())
		}
		fields = append(fields, renderChecksum(m.app))
	}
	return common.HeaderStyle.Render(strings.Join(fields, "  │  "))
}

func renderChecksum(app *client.App) string {
	ok, known := app.ChecksumOK().Get()
	switch {
	case !known:
		return common.DimStyle.Render("content ?")
	case ok:
		return common.OKStyle.Render("content " + common.ReadyIcon)
	default:
		return common.WarnStyle.Render("content mismatch")
	}
}

func (m *Model) renderRoster() string {
	players := m.app.PlayersView()
	lines := []string{common.HeaderStyle.Render(fmt.Sprintf("Players (%d)", players.Len()))}

	self, _ := m.app.PlayerID().Get()
	for _, id := range players.IDs() {
		p, _ := players.Get(id)
		line := fmt.Sprintf("%s %-*s %s", statusIcon(p), common.MaxNameLen,
			common.TruncateName(p.Name, common.MaxNameLen), empireLabel(p))
		if m.app.PlayerID().IsSome() && id == self {
			line = common.SelfStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return common.BoxStyle.Render(strings.Join(lines, "\n"))
}

func statusIcon(p client.PlayerInfo) string {
	if !p.ClientType.ControlsEmpire() {
		return common.ObserverIcon
	}
	switch p.Status {
	case protocol.PlayerStatusWaiting:
		return common.ReadyIcon
	case protocol.PlayerStatusResigned:
		return common.ResignedIcon
	default:
		return common.PlayingIcon
	}
}

func empireLabel(p client.PlayerInfo) string {
	if id, ok := p.EmpireID.Get(); ok {
		return fmt.Sprintf("#%d", id)
	}
	return p.ClientType.String()
}

func (m *Model) renderOrders() string {
	orders := m.app.OrdersView().Orders()
	lines := []string{common.HeaderStyle.Render(fmt.Sprintf("Orders (%d)", len(orders)))}
	if len(orders) == 0 {
		lines = append(lines, common.DimStyle.Render("none"))
	}

	descs := make([]string, 0, len(orders))
	for _, o := range orders {
		descs = append(descs, o.DescribeNamed(m.app.ObjectName))
	}
	if len(descs) > maxOrderLines {
		lines = append(lines, common.DimStyle.Render(fmt.Sprintf("… %d more", len(descs)-maxOrderLines)))
	}
	lines = append(lines, common.Tail(descs, maxOrderLines)...)
	return common.BoxStyle.Render(strings.Join(lines, "\n"))
}
