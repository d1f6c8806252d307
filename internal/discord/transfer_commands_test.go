package discord

import (
	"net/http"
	"strings"
	"testing"

	"github.com/pmurley/auction-bot/internal/credentials"
	"github.com/pmurley/auction-bot/internal/models"
)

func TestParseTransferArgs(t *testing.T) {
	cases := []struct {
		input              string
		player, team, cost string
		ok                 bool
	}{
		{"Ravi Kumar to Titans for 20", "Ravi Kumar", "Titans", "20", true},
		{"Batting For Fun to Royal Strikers for 12", "Batting For Fun", "Royal Strikers", "12", true},
		{"arjun TO meera FOR 45", "arjun", "meera", "45", true},
		{"Ravi Kumar to Titans", "", "", "", false},
		{"Ravi Kumar for 20", "", "", "", false},
		{"to Titans for 20", "", "", "", false},
	}
	for _, tc := range cases {
		player, team, cost, ok := parseTransferArgs(tc.input)
		if ok != tc.ok || player != tc.player || team != tc.team || cost != tc.cost {
			t.Fatalf("parseTransferArgs(%q) = %q, %q, %q, %v", tc.input, player, team, cost, ok)
		}
	}
}

func TestTransferCommand(t *testing.T) {
	hm, fake := newTestManager(t, credentials.Static(testSecret))

	resp := run(t, hm, "!transfer ravi kumar to titans for 20")
	if len(resp.Embeds) != 1 || resp.Embeds[0].Title != "Transfer complete" {
		t.Fatalf("expected confirmation, got %q", embedText(resp))
	}
	text := embedText(resp)
	if !strings.Contains(text, "**Ravi Kumar** joins **Titans** for 20") || !strings.Contains(text, "Spent **20** of 50") {
		t.Fatalf("unexpected confirmation %q", text)
	}
	if p, _ := fake.Player("p1"); p.OwnerID() != "t2" {
		t.Fatalf("expected player moved on the server")
	}
}

func TestTransferCommandValidation(t *testing.T) {
	hm, fake := newTestManager(t, credentials.Static(testSecret))

	resp := run(t, hm, "!transfer Zaheer to Titans for 5")
	for _, want := range []string{"Cannot transfer Zaheer", "below the player's base price"} {
		if !strings.Contains(resp.Content, want) {
			t.Fatalf("expected %q in %q", want, resp.Content)
		}
	}
	if strings.Contains(resp.Content, "budget") {
		t.Fatalf("expected no budget violation, got %q", resp.Content)
	}

	resp = run(t, hm, "!transfer Zaheer to Royal Strikers for 41")
	if !strings.Contains(resp.Content, "exceeds the team's remaining budget") {
		t.Fatalf("expected budget violation, got %q", resp.Content)
	}
	if fake.Calls("PUT /players/{id}") != 0 {
		t.Fatalf("expected no mutation request")
	}

	resp = run(t, hm, "!transfer Zaheer to Titans for ten")
	if !strings.Contains(resp.Content, "positive whole number") {
		t.Fatalf("expected cost violation, got %q", resp.Content)
	}
}

func TestTransferCommandSkipsFullTeams(t *testing.T) {
	hm, fake := newTestManager(t, credentials.Static(testSecret))

	resp := run(t, hm, "!transfer Zaheer to Full House for 15")
	if resp.Content != "Full House already has a full roster (10/10)" {
		t.Fatalf("expected full team reply, got %q", resp.Content)
	}
	if fake.Calls("GET /teams/{id}") != 0 || fake.Calls("PUT /players/{id}") != 0 {
		t.Fatalf("expected nothing submitted for a full team")
	}
}

func TestResolveDestination(t *testing.T) {
	full := make([]models.Player, 10)
	teams := models.TeamList{
		{ID: "t1", Name: "Royal Strikers", Owner: "Meera"},
		{ID: "t2", Name: "Royal Chargers", Owner: "Dev", Players: full},
		{ID: "t3", Name: "Titans", Owner: "Asha", Players: full},
	}

	team, resp := resolveDestination(teams, "royal")
	if resp != nil || team.ID != "t1" {
		t.Fatalf("expected the open team, got %+v %+v", team, resp)
	}
	if _, resp := resolveDestination(teams, "royal chargers"); resp == nil || !strings.Contains(resp.Content, "full roster") {
		t.Fatalf("expected exact full team reported, got %+v", resp)
	}
	if _, resp := resolveDestination(teams, "tit"); resp == nil || resp.Content != "Titans already has a full roster (10/10)" {
		t.Fatalf("expected full team reported, got %+v", resp)
	}
	if _, resp := resolveDestination(teams, "nobody"); resp == nil || !strings.HasPrefix(resp.Content, "No team found") {
		t.Fatalf("expected not found, got %+v", resp)
	}
}

func TestTransferCommandRequiresSecret(t *testing.T) {
	hm, fake := newTestManager(t, credentials.Static(""))

	resp := run(t, hm, "!transfer Zaheer to Titans for 10")
	if !strings.HasPrefix(resp.Content, "🔒") {
		t.Fatalf("expected secret prompt, got %q", resp.Content)
	}
	if fake.Calls("GET /players") != 0 {
		t.Fatalf("expected no lookups without a key")
	}
}

func TestTransferCommandServerRejection(t *testing.T) {
	hm, fake := newTestManager(t, credentials.Static(testSecret))
	fake.Fail("PUT /players/{id}", http.StatusConflict, "application/json", `{"message":"Player already sold"}`)

	resp := run(t, hm, "!transfer Zaheer to Titans for 10")
	if resp.Content != "❌ Player already sold" {
		t.Fatalf("expected server message, got %q", resp.Content)
	}
}

func TestTransferCommandResolution(t *testing.T) {
	hm, _ := newTestManager(t, credentials.Static(testSecret))

	resp := run(t, hm, "!transfer Ravi to Titans for 20")
	if !strings.Contains(resp.Content, "Multiple players found matching 'Ravi'") {
		t.Fatalf("expected ambiguity, got %q", resp.Content)
	}
	resp = run(t, hm, "!transfer Zaheer to Nowhere for 20")
	if !strings.HasPrefix(resp.Content, "No team found matching 'Nowhere'") {
		t.Fatalf("expected unknown team, got %q", resp.Content)
	}
	resp = run(t, hm, "!transfer Zaheer Titans 20")
	if !strings.HasPrefix(resp.Content, "Usage:") {
		t.Fatalf("expected usage, got %q", resp.Content)
	}
}

func TestRemoveCommand(t *testing.T) {
	hm, fake := newTestManager(t, credentials.Static(testSecret))

	resp := run(t, hm, "!remove arjun")
	if resp.Content != "✅ Removed **Arjun** from Royal Strikers" {
		t.Fatalf("unexpected reply %q", resp.Content)
	}
	if p, _ := fake.Player("p3"); p.IsSold() {
		t.Fatalf("expected player cleared on the server")
	}

	resp = run(t, hm, "!remove Zaheer")
	if resp.Content != "Zaheer is not on a team" {
		t.Fatalf("unexpected reply %q", resp.Content)
	}
	if fake.Calls("PUT /players/{id}/remove") != 1 {
		t.Fatalf("expected a single removal call")
	}
}

func TestDestinationsCommand(t *testing.T) {
	hm, _ := newTestManager(t, credentials.Static(testSecret))

	resp := run(t, hm, "!destinations Ravi Kumar")
	embed := resp.Embeds[0]
	if len(embed.Fields) != 2 {
		t.Fatalf("expected two open teams, got %d", len(embed.Fields))
	}
	if !strings.Contains(embed.Fields[1].Value, "Cost: 15 to 50") {
		t.Fatalf("expected Titans cost range, got %q", embed.Fields[1].Value)
	}
	if embed.Footer == nil || embed.Footer.Text != "1 full team hidden" {
		t.Fatalf("expected full team footer, got %+v", embed.Footer)
	}

	hm, _ = newTestManager(t, credentials.Static(""))
	text := embedText(run(t, hm, "!destinations Ravi Kumar"))
	if strings.Contains(text, "Cost:") {
		t.Fatalf("expected cost ranges hidden without a key, got %q", text)
	}
}

func TestBuildDestinationsEmbedUnaffordable(t *testing.T) {
	player := models.Player{ID: "p9", Name: "Star", BasePrice: 80}
	teams := []models.Team{{ID: "t2", Name: "Titans", Owner: "Dev", Budget: 50}}

	embed := buildDestinationsEmbed(player, teams, 0, true)
	if !strings.Contains(embed.Fields[0].Value, "Cannot afford the base price") {
		t.Fatalf("expected unaffordable note, got %q", embed.Fields[0].Value)
	}
	if embed.Footer != nil {
		t.Fatalf("expected no footer without full teams")
	}

	embed = buildDestinationsEmbed(player, nil, 3, true)
	if !strings.Contains(embed.Description, "Every team has a full roster") || embed.Footer.Text != "3 full teams hidden" {
		t.Fatalf("unexpected embed %+v", embed)
	}
}
