package bparsefx

import (
	"context"

	"github.com/advdv/bparse"
)

// Stream feeds the successive reads of one connection to a parser. Buffering across reads stays
// with the caller: views in the message borrow from every buffer passed to Feed.
type Stream struct {
	parser *bparse.Parser
	logs   bparse.Logger
}

// Parser returns the underlying parser.
func (s *Stream) Parser() *bparse.Parser { return s.parser }

// Feed parses data into m. Pauses requested by the handler are resumed immediately. When the stream
// switches protocols the bytes that follow the upgrade request are returned. An HTTP/2 connection
// preface also ends the HTTP/1 stream: the bytes after "PRI * HTTP/2.0" are returned and the parser
// keeps reporting [bparse.ErrnoPausedH2Upgrade]. Parse errors are logged.
func (s *Stream) Feed(ctx context.Context, m *bparse.Message, data []byte) (upgraded []byte, err error) {
	for {
		switch errno := s.parser.ExecuteContext(ctx, m, data); errno {
		case bparse.ErrnoOK:
			return nil, nil
		case bparse.ErrnoPaused:
			data = data[s.parser.ErrorPos():]
			s.parser.Resume()
		case bparse.ErrnoPausedUpgrade:
			rest := data[s.parser.ErrorPos():]
			s.parser.ResumeAfterUpgrade()
			return rest, nil
		case bparse.ErrnoPausedH2Upgrade:
			return data[s.parser.ErrorPos():], nil
		default:
			err := s.parser.Err()
			s.logs.LogParseError(err)
			return nil, err
		}
	}
}

// Close signals the end of the stream, completing m when its body was delimited by the connection
// closing. Ending inside a message is logged and reported as an error.
func (s *Stream) Close(m *bparse.Message) error {
	if errno := s.parser.FinishMessage(m); errno != bparse.ErrnoOK {
		err := bparse.NewError(errno, s.parser.ErrorReason(), 0)
		s.logs.LogParseError(err)
		return err
	}

	return nil
}
