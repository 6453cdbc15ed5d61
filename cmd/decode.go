package cmd

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/luma/minicoap/coap"
	"github.com/luma/minicoap/internal/render"
)

var (
	// Raw binary datagram to decode instead of hex input
	decodeFile string
)

func init() {
	flags := DecodeCmd.Flags()

	flags.StringVarP(&decodeFile, "file", "f", "", "Read a single raw binary datagram from this file")
}

var DecodeCmd = &cobra.Command{
	Use:   "decode [hex...]",
	Short: "Decode CoAP datagrams into JSON",
	Long: `Decode CoAP datagrams into JSON, one document per datagram.

Each argument is a hex encoded datagram. With no arguments, one hex datagram
is read per line of stdin. With --file a raw binary datagram is read from
the file instead.

Usage
	minicoap decode 40011234b3617069
	echo 40011234b3617069 | minicoap decode
	minicoap decode --file packet.bin

`,
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, log, err := setup(cmd.Context(), "decode")
		if err != nil {
			return err
		}
		defer log.Sync() // nolint:errcheck

		inputs, err := readDatagrams(cmd.InOrStdin(), args, decodeFile)
		if err != nil {
			return err
		}

		return decodeAll(log, cmd.OutOrStdout(), inputs, conf.Pretty)
	},
}

// datagram is one input to decode. err is set when the input could not
// be read as a datagram at all.
type datagram struct {
	source string
	data   []byte
	err    error
}

func readDatagrams(stdin io.Reader, args []string, file string) ([]datagram, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}

		return []datagram{{source: file, data: data}}, nil
	}

	if len(args) > 0 {
		inputs := make([]datagram, 0, len(args))
		for i, arg := range args {
			inputs = append(inputs, hexDatagram(fmt.Sprintf("arg %d", i+1), arg))
		}

		return inputs, nil
	}

	var inputs []datagram

	line := 0
	scanner := bufio.NewScanner(stdin)
	for scanner.Scan() {
		line++

		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		inputs = append(inputs, hexDatagram(fmt.Sprintf("line %d", line), text))
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return inputs, nil
}

// hexDatagram decodes s, ignoring whitespace and an optional 0x prefix.
func hexDatagram(source, s string) datagram {
	s = strings.Join(strings.Fields(s), "")
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")

	data, err := hex.DecodeString(s)
	if err != nil {
		return datagram{source: source, err: fmt.Errorf("not hex: %w", err)}
	}

	return datagram{source: source, data: data}
}

// decodeAll writes a JSON document for every input that decodes. It keeps
// going past bad inputs and returns all of their errors together.
func decodeAll(log *zap.Logger, out io.Writer, inputs []datagram, pretty bool) (errs error) {
	for _, in := range inputs {
		doc, err := decodeOne(in)
		if err != nil {
			log.Warn("Could not decode datagram",
				zap.String("source", in.source),
				zap.Binary("datagram", in.data),
				zap.Error(err))

			errs = multierr.Append(errs, fmt.Errorf("%s: %w", in.source, err))
			continue
		}

		log.Debug("Decoded datagram",
			zap.String("source", in.source),
			zap.Int("bytes", len(in.data)))

		if pretty {
			doc = render.Pretty(doc)
		} else {
			doc = append(doc, '\n')
		}

		if _, err := out.Write(doc); err != nil {
			return multierr.Append(errs, err)
		}
	}

	return errs
}

func decodeOne(in datagram) ([]byte, error) {
	if in.err != nil {
		return nil, in.err
	}

	msg, err := coap.Parse(in.data)
	if err != nil {
		return nil, err
	}

	return render.MessageJSON(msg)
}
