package main

import (
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/playmatatu/cuptoss/internal/game"
)

const frameInterval = time.Second / game.NominalFrameHz

// client is a local terminal front end driving a Round directly.
type client struct {
	screen tcell.Screen
	round  *game.Round
	view   view

	reveals chan func()
	message string
	aimCol  int
	aimRow  int
}

func newClient() (*client, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()

	c := &client{
		screen:  screen,
		reveals: make(chan func(), 4),
		message: "s: start   click or space: throw   arrows: aim   r: reset   esc: menu   ctrl-c: quit",
	}
	c.round = game.NewRound(game.RoundOptions{
		Rand:      rand.New(rand.NewSource(time.Now().UnixNano())),
		Schedule:  c.schedule,
		Presenter: game.PresenterFunc(c.present),
	})
	w, h := screen.Size()
	c.view = view{width: w, height: h}
	if col, row, ok := c.view.toCell(game.NewVec3(0, 0, game.FrontRowZ)); ok {
		c.aimCol, c.aimRow = col, row
	}
	return c, nil
}

// schedule hands deferred work back to the main loop so the round is only touched there.
func (c *client) schedule(d time.Duration, fn func()) {
	time.AfterFunc(d, func() { c.reveals <- fn })
}

func (c *client) present(event string, payload any) {
	switch event {
	case game.EventRoundStarted:
		c.message = "Round started. Land the ball in a cup."
	case game.EventTargetHit:
		if h, ok := payload.(game.Hit); ok {
			c.message = fmt.Sprintf("+%d (%s cup)", h.Points, h.Tier)
		}
	case game.EventRoundComplete:
		if res, ok := payload.(game.Result); ok {
			c.message = fmt.Sprintf("Final score %d, rank #%d. r: play again", res.Score, res.Rank)
		}
	case game.EventRoundAborted:
		c.message = "Back at the menu. s: start"
	case game.EventRoundReset:
		c.message = "s: start"
	}
}

func (c *client) throwAt(col, row int) {
	p, ok := c.view.toWorld(col, row)
	if !ok {
		return
	}
	if err := c.round.Launch(game.AimVelocity(game.LaunchOrigin, p)); err != nil {
		c.message = err.Error()
	}
}

func (c *client) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyCtrlC:
			return false
		case tcell.KeyEscape:
			c.round.Abort()
		case tcell.KeyUp:
			c.aimRow--
		case tcell.KeyDown:
			c.aimRow++
		case tcell.KeyLeft:
			c.aimCol--
		case tcell.KeyRight:
			c.aimCol++
		case tcell.KeyRune:
			switch ev.Rune() {
			case 's':
				c.round.StartRound()
			case 'r':
				c.round.Reset()
			case ' ':
				c.throwAt(c.aimCol, c.aimRow)
			}
		}

	case *tcell.EventMouse:
		col, row := ev.Position()
		c.aimCol, c.aimRow = col, row
		if ev.Buttons()&tcell.Button1 != 0 {
			c.throwAt(col, row)
		}

	case *tcell.EventResize:
		w, h := c.screen.Size()
		c.view = view{width: w, height: h}
		c.screen.Sync()
	}
	return true
}

func (c *client) draw() {
	c.screen.Clear()

	status := fmt.Sprintf("%-14s score %4d   throws %2d", c.round.Status(), c.round.Score(), c.round.ThrowsLeft())
	if rank, ok := c.round.Rank(); ok {
		status += fmt.Sprintf("   rank #%d", rank)
	}
	c.drawText(0, 0, status, tcell.StyleDefault.Bold(true))
	c.drawText(0, 1, c.message, tcell.StyleDefault.Foreground(tcell.ColorGray))

	snap := c.round.Snapshot()
	for _, t := range snap.Targets {
		if col, row, ok := c.view.toCell(t.Position); ok {
			c.screen.SetContent(col, row, 'U', nil, tcell.StyleDefault.Foreground(tcell.NewHexColor(int32(t.Color))))
		}
	}
	for _, p := range snap.Particles {
		if col, row, ok := c.view.toCell(p.Position); ok {
			c.screen.SetContent(col, row, '*', nil, tcell.StyleDefault.Foreground(tcell.NewHexColor(int32(p.Color))))
		}
	}
	for _, p := range snap.Projectiles {
		if col, row, ok := c.view.toCell(p.Position); ok {
			c.screen.SetContent(col, row, heightGlyph(p.Position.Y), nil, tcell.StyleDefault.Foreground(tcell.ColorWhite))
		}
	}
	if col, row, ok := c.view.toCell(game.LaunchOrigin); ok {
		c.screen.SetContent(col, row, '^', nil, tcell.StyleDefault.Foreground(tcell.ColorAqua))
	}
	c.screen.SetContent(c.aimCol, c.aimRow, '+', nil, tcell.StyleDefault.Foreground(tcell.ColorRed).Reverse(true))

	c.screen.Show()
}

func (c *client) drawText(col, row int, s string, style tcell.Style) {
	for _, r := range s {
		c.screen.SetContent(col, row, r, nil, style)
		col++
	}
}

func (c *client) run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- c.screen.PollEvent()
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !c.handleInput(ev) {
				return
			}
		case fn := <-c.reveals:
			fn()
		case <-ticker.C:
			c.round.FrameTick(1)
			c.draw()
		}
	}
}

func main() {
	c, err := newClient()
	if err != nil {
		log.Printf("[TUI] failed to open terminal: %v", err)
		os.Exit(1)
	}
	defer c.screen.Fini()

	// The round logs to stderr, which would tear the screen.
	log.SetOutput(io.Discard)

	c.run()
}
