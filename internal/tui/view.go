package tui

import (
	"fmt"
	"strings"

	"github.com/block52/holdem-client/holdem"
	"github.com/block52/holdem-client/holdem/chips"
)

// View renders the table pane, game log and input box.
func (m *Model) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}
	if !m.initialized {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(" b52poker ") + " " + m.headerLine() + "\n")
	b.WriteString(tableStyle.Render(m.renderTable()) + "\n")
	b.WriteString(m.logViewport.View() + "\n")
	if m.state != nil && m.state.IsPlayerTurn(m.address) {
		b.WriteString(actionsStyle.Render(availableSummary(m.avail)) + "\n")
	}
	b.WriteString(m.actionInput.View())
	return b.String()
}

func (m *Model) headerLine() string {
	who := shortAddr(m.address)
	if m.name != "" {
		who = m.name + " " + who
	}
	if m.state == nil {
		return infoStyle.Render(who + "  waiting for table state")
	}
	return infoStyle.Render(fmt.Sprintf("%s  table %s  hand #%d  %s",
		who, shortAddr(m.state.Address), m.state.HandNumber, m.state.Round))
}

func (m *Model) renderTable() string {
	if m.state == nil {
		return "no snapshot yet"
	}
	s := m.state

	var b strings.Builder
	b.WriteString(potStyle.Render("Pot: "+chips.Format(s.TotalPot())) +
		"   Board: " + renderCards(s.CommunityCards) + "\n")

	for _, p := range s.Players {
		marker := "  "
		if p.Seat == s.NextToAct {
			marker = turnStyle.Render("→ ")
		}
		pos := ""
		switch p.Seat {
		case s.Dealer:
			pos = " (D)"
		case s.SmallBlindPosition:
			pos = " (SB)"
		case s.BigBlindPosition:
			pos = " (BB)"
		}

		style := playerStyle
		if p.Status == holdem.StatusFolded || p.Status == holdem.StatusSittingOut {
			style = foldedStyle
		}

		name := shortAddr(p.Address)
		if strings.EqualFold(p.Address, m.address) {
			name += " (you)"
		}
		line := fmt.Sprintf("seat %d  %-22s %10s  %s%s",
			p.Seat, name, chips.Format(p.StackMicro()), p.Status, pos)
		b.WriteString(marker + style.Render(line) + "\n")
	}

	for _, w := range s.Winners {
		b.WriteString(turnStyle.Render(fmt.Sprintf("winner: %s +%s",
			shortAddr(w.Address), chips.Format(chips.Parse(w.Amount)))) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderCards colours cards by suit. Cards arrive as rank+suit strings
// like "AS" or "TD".
func renderCards(cards []string) string {
	if len(cards) == 0 {
		return infoStyle.Render("--")
	}
	rendered := make([]string, len(cards))
	for i, c := range cards {
		pretty := prettyCard(c)
		if strings.ContainsAny(c, "HDhd") {
			rendered[i] = redCardStyle.Render(pretty)
		} else {
			rendered[i] = blackCardStyle.Render(pretty)
		}
	}
	return strings.Join(rendered, " ")
}

func prettyCard(c string) string {
	if len(c) < 2 {
		return c
	}
	suits := map[byte]string{'S': "♠", 'H': "♥", 'D': "♦", 'C': "♣",
		's': "♠", 'h': "♥", 'd': "♦", 'c': "♣"}
	suit, ok := suits[c[len(c)-1]]
	if !ok {
		return c
	}
	return c[:len(c)-1] + suit
}

func tableHeight(s *holdem.TableState) int {
	if s == nil {
		return 3
	}
	return len(s.Players) + len(s.Winners) + 3
}

func shortAddr(addr string) string {
	if len(addr) <= 12 {
		return addr
	}
	return addr[:8] + "…" + addr[len(addr)-4:]
}

func shortHash(h string) string {
	if len(h) <= 14 {
		return h
	}
	return h[:10] + "…"
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}

func joinWith(parts []string, sep string) string {
	return strings.Join(parts, sep)
}
