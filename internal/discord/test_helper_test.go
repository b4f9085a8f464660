package discord

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"
)

// MockRoundTripper implements http.RoundTripper for intercepting requests
type MockRoundTripper struct {
	RoundTripFunc func(req *http.Request) (*http.Response, error)
}

func (m *MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return m.RoundTripFunc(req)
}

type capturedRequest struct {
	Method string
	Path   string
	Body   []byte
}

// TestContext is a Discord session whose REST calls are captured instead of sent
type TestContext struct {
	Session      *discordgo.Session
	DiscordMocks *MockRoundTripper

	// Reply picks the status and body for a request. Defaults to 200 "{}".
	Reply func(req *http.Request) (int, string)

	mu       sync.Mutex
	requests []capturedRequest
}

func SetupTestContext(t *testing.T) *TestContext {
	t.Helper()
	session, err := discordgo.New("Bot test-token")
	require.NoError(t, err)
	session.MaxRestRetries = 0

	ctx := &TestContext{Session: session}
	ctx.DiscordMocks = &MockRoundTripper{
		RoundTripFunc: func(req *http.Request) (*http.Response, error) {
			var body []byte
			if req.Body != nil {
				body, _ = io.ReadAll(req.Body)
			}
			ctx.mu.Lock()
			ctx.requests = append(ctx.requests, capturedRequest{Method: req.Method, Path: req.URL.Path, Body: body})
			ctx.mu.Unlock()

			status, resp := http.StatusOK, "{}"
			if ctx.Reply != nil {
				status, resp = ctx.Reply(req)
			}
			return &http.Response{
				StatusCode: status,
				Body:       io.NopCloser(bytes.NewBufferString(resp)),
				Header:     make(http.Header),
				Request:    req,
			}, nil
		},
	}
	session.Client = &http.Client{Transport: ctx.DiscordMocks}
	return ctx
}

// Requests returns the captured requests whose method matches and whose path contains fragment
func (c *TestContext) Requests(method, fragment string) []capturedRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []capturedRequest
	for _, r := range c.requests {
		if r.Method == method && strings.Contains(r.Path, fragment) {
			out = append(out, r)
		}
	}
	return out
}

func (c *TestContext) RequestCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.requests)
}

type sentButton struct {
	Label    string `json:"label"`
	CustomID string `json:"custom_id"`
	Disabled bool   `json:"disabled"`
	Style    int    `json:"style"`
}

type sentRow struct {
	Components []sentButton `json:"components"`
}

type sentMessage struct {
	Content    *string                   `json:"content"`
	Embeds     []*discordgo.MessageEmbed `json:"embeds"`
	Components []sentRow                 `json:"components"`
	Flags      int                       `json:"flags"`
}

type sentCallback struct {
	Type discordgo.InteractionResponseType `json:"type"`
	Data sentMessage                       `json:"data"`
}

// LastCallback decodes the latest interaction callback (InteractionRespond)
func (c *TestContext) LastCallback(t *testing.T) sentCallback {
	t.Helper()
	reqs := c.Requests(http.MethodPost, "/callback")
	require.NotEmpty(t, reqs, "expected an interaction callback")
	var cb sentCallback
	require.NoError(t, json.Unmarshal(reqs[len(reqs)-1].Body, &cb))
	return cb
}

// LastEdit decodes the latest edit of the original interaction response
func (c *TestContext) LastEdit(t *testing.T) sentMessage {
	t.Helper()
	reqs := c.Requests(http.MethodPatch, "/messages/@original")
	require.NotEmpty(t, reqs, "expected an interaction response edit")
	var msg sentMessage
	require.NoError(t, json.Unmarshal(reqs[len(reqs)-1].Body, &msg))
	return msg
}

// LastEmbed returns the single embed of the latest edit
func (c *TestContext) LastEmbed(t *testing.T) *discordgo.MessageEmbed {
	t.Helper()
	msg := c.LastEdit(t)
	require.Len(t, msg.Embeds, 1)
	return msg.Embeds[0]
}

func commandInteraction(name, userID string, opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			ID:        "interaction-1",
			AppID:     "app-1",
			Token:     "token-1",
			ChannelID: "channel-1",
			Type:      discordgo.InteractionApplicationCommand,
			Data: discordgo.ApplicationCommandInteractionData{
				Name:    name,
				Options: opts,
			},
			Member: &discordgo.Member{
				User: &discordgo.User{ID: userID, Username: "user" + userID},
			},
		},
	}
}

func componentInteraction(customID, userID string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			ID:        "interaction-2",
			AppID:     "app-1",
			Token:     "token-2",
			ChannelID: "channel-1",
			Type:      discordgo.InteractionMessageComponent,
			Data: discordgo.MessageComponentInteractionData{
				CustomID:      customID,
				ComponentType: discordgo.ButtonComponent,
			},
			Member: &discordgo.Member{
				User: &discordgo.User{ID: userID, Username: "user" + userID},
			},
		},
	}
}

func stringOpt(name, value string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionString, Value: value}
}

func numberOpt(name string, value float64) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionNumber, Value: value}
}

func intOpt(name string, value int) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionInteger, Value: float64(value)}
}

// testDeps wires mocks into Deps the way New does
type testDeps struct {
	*Deps
	econ     *MockEconomy
	crafting *MockCrafting
	autoroll *MockAutoRoller
	admin    *MockAdmin
}

func newTestDeps(s *discordgo.Session, confirmTimeout time.Duration) *testDeps {
	td := &testDeps{
		econ:     new(MockEconomy),
		crafting: new(MockCrafting),
		autoroll: new(MockAutoRoller),
		admin:    new(MockAdmin),
	}
	td.Deps = &Deps{
		Economy:  td.econ,
		Crafting: td.crafting,
		AutoRoll: td.autoroll,
		Admin:    td.admin,
		names:    NewNameCache(s),
		confirms: newConfirmations(confirmTimeout),
	}
	return td
}
