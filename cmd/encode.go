package cmd

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/luma/minicoap/internal/render"
)

var (
	// Write the datagram as raw bytes rather than hex
	encodeRaw bool
)

func init() {
	flags := EncodeCmd.Flags()

	flags.BoolVar(&encodeRaw, "raw", false, "Write the raw binary datagram instead of hex")
}

var EncodeCmd = &cobra.Command{
	Use:   "encode [json]",
	Short: "Encode a CoAP datagram from a JSON description",
	Long: `Encode a CoAP datagram from a JSON description.

The description is the first argument, or stdin when there is none. It
takes the same shape decode prints:

	{"type": "CON", "code": "GET", "message_id": 1,
	 "options": [{"name": "Uri-Path", "string": "sensors"}]}

The datagram is built into a buffer of MINICOAP_BUFFER_SIZE bytes.

Usage
	minicoap encode '{"code": "GET", "options": [{"name": "Uri-Path", "string": "a"}]}'
	minicoap encode --raw < request.json > request.bin

`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, log, err := setup(cmd.Context(), "encode")
		if err != nil {
			return err
		}
		defer log.Sync() // nolint:errcheck

		var desc []byte
		if len(args) == 1 {
			desc = []byte(args[0])
		} else if desc, err = io.ReadAll(cmd.InOrStdin()); err != nil {
			return err
		}

		packet, err := encode(log, desc, conf.BufferSize)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if encodeRaw {
			_, err = out.Write(packet)
		} else {
			_, err = fmt.Fprintln(out, hex.EncodeToString(packet))
		}

		return err
	},
}

var errEmptyDescription = errors.New("no message description given")

func encode(log *zap.Logger, desc []byte, bufferSize int) ([]byte, error) {
	if len(desc) == 0 {
		return nil, errEmptyDescription
	}

	packet, err := render.BuildJSON(desc, make([]byte, bufferSize))
	if err != nil {
		log.Warn("Could not encode datagram",
			zap.ByteString("description", desc),
			zap.Int("bufferSize", bufferSize),
			zap.Error(err))

		return nil, err
	}

	log.Debug("Encoded datagram", zap.Int("bytes", len(packet)))

	return packet, nil
}
