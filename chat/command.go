package chat

import "strings"

// Kind identifies which protocol command a line parsed into.
type Kind int

const (
	// KindUnknown covers unrecognized keywords and malformed argument
	// lists. The dispatcher answers these with an error reply instead of
	// dropping the connection.
	KindUnknown Kind = iota
	KindRegister
	KindLogin
	KindOnline
	KindMessage
	KindPrivate
	KindQuit
)

func (k Kind) String() string {
	switch k {
	case KindRegister:
		return "REGISTER"
	case KindLogin:
		return "LOGIN"
	case KindOnline:
		return "ONLINE"
	case KindMessage:
		return "MESSAGE"
	case KindPrivate:
		return "PRIVATE"
	case KindQuit:
		return "QUIT"
	default:
		return "UNKNOWN"
	}
}

// Command is one parsed client request.
//
// User carries the username argument (the account for REGISTER/LOGIN, the
// recipient for PRIVATE), Secret the password, and Text the message body.
type Command struct {
	Kind   Kind
	User   string
	Secret string
	Text   string
}

// ParseCommand turns one line of client input into a typed command.
//
// Argument counts are validated here: a REGISTER with one token too many or
// a PRIVATE without a body comes back as KindUnknown rather than a partial
// command, so the dispatcher never acts on half-parsed input.
func ParseCommand(line string) Command {
	line = strings.TrimRight(line, "\r\n")
	keyword, rest, _ := strings.Cut(line, " ")

	switch {
	case keyword == "REGISTER" || keyword == "LOGIN":
		args := strings.Fields(rest)
		if len(args) != 2 {
			return Command{Kind: KindUnknown}
		}
		kind := KindRegister
		if keyword == "LOGIN" {
			kind = KindLogin
		}
		return Command{Kind: kind, User: args[0], Secret: args[1]}

	case line == "ONLINE":
		return Command{Kind: KindOnline}

	case keyword == "MESSAGE":
		if strings.TrimSpace(rest) == "" {
			return Command{Kind: KindUnknown}
		}
		return Command{Kind: KindMessage, Text: rest}

	case keyword == "PRIVATE":
		target, text, ok := strings.Cut(rest, " ")
		if !ok || target == "" || strings.TrimSpace(text) == "" {
			return Command{Kind: KindUnknown}
		}
		return Command{Kind: KindPrivate, User: target, Text: text}

	// The reference client sends QUIT in whatever case the user typed it.
	case strings.EqualFold(line, "QUIT"):
		return Command{Kind: KindQuit}
	}

	return Command{Kind: KindUnknown}
}
