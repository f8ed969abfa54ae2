package core

// Color is the foreground of a screen cell. The terminal layer maps it to
// an ANSI 256-color code.
type Color uint8

// Colors used by the renderer.
const (
	ColorDefault      Color = iota
	ColorRed                // spikes, dead player
	ColorYellow             // hints
	ColorMagenta            // unknown tiles
	ColorCyan               // movers
	ColorWhite              // semiground, eye sockets
	ColorBrightRed          // enemies
	ColorBrightGreen        // exits, win banner
	ColorBrightYellow       // jumpcoins, a player carrying coins
	ColorBrightCyan         // player, intro banner
	ColorBrightWhite        // pupils, HUD
	ColorGray               // ground, dim text
)
