package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"hookdesk/internal/engine/keys"
)

type GenerateCmd struct {
	Count int  `short:"n" default:"1" help:"Number of keys to generate."`
	Mask  bool `help:"Print keys masked to their last four digits."`
}

func (c *GenerateCmd) Run() error {
	if c.Count < 1 {
		return fmt.Errorf("count must be at least 1, got %d", c.Count)
	}

	gen := keys.NewGenerator()
	for i := 0; i < c.Count; i++ {
		key := gen.Generate()
		if c.Mask {
			key = keys.Mask(key)
		}
		fmt.Println(key)
	}
	return nil
}

type MaskCmd struct {
	Key string `arg:"" help:"Key to mask."`
}

func (c *MaskCmd) Run() error {
	fmt.Println(keys.Mask(c.Key))
	return nil
}

type QRCmd struct {
	Key    string `arg:"" help:"Key to encode."`
	Output string `short:"o" required:"" help:"PNG file to write." type:"path"`
	Size   int    `default:"256" help:"Image size in pixels (128 to 2048)."`
}

func (c *QRCmd) Run() error {
	png, err := keys.QRCode(c.Key, c.Size)
	if err != nil {
		return err
	}
	return os.WriteFile(c.Output, png, 0o644)
}

var cli struct {
	Generate GenerateCmd `cmd:"" help:"Generate 16-digit subscription private keys."`
	Mask     MaskCmd     `cmd:"" help:"Mask a private key."`
	QR       QRCmd       `cmd:"" name:"qr" help:"Render a private key as a PNG QR code."`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("keygen"),
		kong.Description("Subscription private key tools."),
		kong.UsageOnError(),
	)
	ctx.FatalIfErrorf(ctx.Run())
}
