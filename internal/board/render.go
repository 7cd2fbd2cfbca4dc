package board

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	imagedraw "image/draw"
	"image/png"
	"strings"

	nchess "github.com/corentings/chess/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Highlight marks the origin and destination squares of the last applied move.
type Highlight struct {
	From nchess.Square
	To   nchess.Square
}

type RenderOptions struct {
	Highlight *Highlight
	Header    string
}

// Renderer turns a board position into an image.
type Renderer interface {
	RenderPNG(ctx context.Context, board *nchess.Board, opts RenderOptions) ([]byte, error)
}

type pngRenderer struct{}

func NewRenderer() Renderer {
	return &pngRenderer{}
}

var (
	lightSquare    = color.RGBA{233, 207, 163, 255}
	darkSquare     = color.RGBA{187, 136, 96, 255}
	highlightFill  = color.NRGBA{R: 255, G: 228, B: 120, A: 140}
	backgroundFill = color.RGBA{24, 26, 34, 255}
	headerText     = color.NRGBA{R: 236, G: 239, B: 255, A: 255}
	coordinateText = color.NRGBA{R: 210, G: 214, B: 228, A: 255}
)

func (r *pngRenderer) RenderPNG(ctx context.Context, b *nchess.Board, opts RenderOptions) ([]byte, error) {
	if b == nil {
		return nil, fmt.Errorf("board is nil")
	}

	const (
		squareSize   = 64
		boardSquares = 8
		boardSize    = squareSize * boardSquares
		sideMargin   = 28
		topMargin    = 52
		bottomMargin = 28
	)

	totalWidth := boardSize + sideMargin*2
	totalHeight := boardSize + topMargin + bottomMargin
	origin := image.Point{X: sideMargin, Y: topMargin}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	img := image.NewRGBA(image.Rect(0, 0, totalWidth, totalHeight))
	imagedraw.Draw(img, img.Bounds(), image.NewUniform(backgroundFill), image.Point{}, imagedraw.Src)

	drawSquares(img, squareSize, origin)
	if opts.Highlight != nil {
		drawSquareOverlay(img, opts.Highlight.From, squareSize, origin, highlightFill)
		drawSquareOverlay(img, opts.Highlight.To, squareSize, origin, highlightFill)
	}
	if err := drawPieces(img, b, squareSize, origin); err != nil {
		return nil, err
	}
	drawHeader(img, opts.Header, totalWidth, topMargin)
	drawCoordinates(img, squareSize, origin, sideMargin)

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	renderRanks = []nchess.Rank{nchess.Rank8, nchess.Rank7, nchess.Rank6, nchess.Rank5, nchess.Rank4, nchess.Rank3, nchess.Rank2, nchess.Rank1}
	renderFiles = []nchess.File{nchess.FileA, nchess.FileB, nchess.FileC, nchess.FileD, nchess.FileE, nchess.FileF, nchess.FileG, nchess.FileH}
)

func drawSquares(dst imagedraw.Image, squareSize int, origin image.Point) {
	for row, rank := range renderRanks {
		for col, file := range renderFiles {
			x := origin.X + col*squareSize
			y := origin.Y + row*squareSize
			sq := nchess.NewSquare(file, rank)
			imagedraw.Draw(dst, image.Rect(x, y, x+squareSize, y+squareSize), image.NewUniform(squareColor(sq)), image.Point{}, imagedraw.Src)
		}
	}
}

func drawPieces(dst imagedraw.Image, b *nchess.Board, squareSize int, origin image.Point) error {
	boardMap := b.SquareMap()
	for row, rank := range renderRanks {
		for col, file := range renderFiles {
			sq := nchess.NewSquare(file, rank)
			piece := boardMap[sq]
			if piece == nchess.NoPiece {
				continue
			}
			img, err := pieceImage(piece, squareSize)
			if err != nil {
				return err
			}
			x := origin.X + col*squareSize
			y := origin.Y + row*squareSize
			imagedraw.Draw(dst, image.Rect(x, y, x+squareSize, y+squareSize), img, image.Point{}, imagedraw.Over)
		}
	}
	return nil
}

func drawSquareOverlay(img *image.RGBA, sq nchess.Square, squareSize int, origin image.Point, clr color.Color) {
	imagedraw.Draw(img, squareRect(sq, squareSize, origin), image.NewUniform(clr), image.Point{}, imagedraw.Over)
}

func drawHeader(img *image.RGBA, header string, totalWidth, topMargin int) {
	header = strings.TrimSpace(header)
	if header == "" {
		return
	}
	face := basicfont.Face7x13
	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(headerText),
		Face: face,
	}
	width := drawer.MeasureString(header).Round()
	x := (totalWidth - width) / 2
	if x < 0 {
		x = 0
	}
	baseline := (topMargin + face.Metrics().Ascent.Ceil()) / 2
	drawer.Dot = fixed.P(x, baseline)
	drawer.DrawString(header)
}

func drawCoordinates(img *image.RGBA, squareSize int, origin image.Point, margin int) {
	face := basicfont.Face7x13
	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(coordinateText),
		Face: face,
	}
	ascent := face.Metrics().Ascent.Ceil()

	boardEndY := origin.Y + len(renderRanks)*squareSize
	for row, rank := range renderRanks {
		baseline := origin.Y + row*squareSize + squareSize/2 + ascent/2
		drawer.Dot = fixed.P(origin.X-margin/2-3, baseline)
		drawer.DrawString(rank.String())
	}
	for col, file := range renderFiles {
		centerX := origin.X + col*squareSize + squareSize/2
		width := drawer.MeasureString(file.String()).Round()
		drawer.Dot = fixed.P(centerX-width/2, boardEndY+ascent+4)
		drawer.DrawString(file.String())
	}
}

func squareRect(sq nchess.Square, squareSize int, origin image.Point) image.Rectangle {
	col := int(sq.File())
	row := 7 - int(sq.Rank())
	x := origin.X + col*squareSize
	y := origin.Y + row*squareSize
	return image.Rect(x, y, x+squareSize, y+squareSize)
}

func squareColor(sq nchess.Square) color.Color {
	if (int(sq.File())+int(sq.Rank()))%2 == 0 {
		return darkSquare
	}
	return lightSquare
}
