package handler

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/Eursukkul/hotel-reservation/internal/models"
	"github.com/Eursukkul/hotel-reservation/internal/service"
	"go.uber.org/zap"
)

var (
	ErrUsage          = errors.New("usage error")
	ErrEventsDisabled = errors.New("reservation events are disabled, set RABBITMQ_URL")
)

const usage = `usage: hotelres <command> <action> [flags]

  customer    create|show|modify|delete
  hotel       create|show|modify|delete|release
  reservation create|show|cancel
  events      print reservation events as they arrive
`

// EventTail streams reservation events to w until ctx is done.
type EventTail func(ctx context.Context, w io.Writer) error

type CLIHandler struct {
	customers    service.CustomerService
	hotels       service.HotelService
	reservations service.ReservationService
	out          io.Writer
	log          *zap.Logger
	rooms        []string
	tail         EventTail
}

type Option func(*CLIHandler)

// WithDefaultRooms sets the room inventory of hotels created without --rooms.
func WithDefaultRooms(rooms []string) Option {
	return func(h *CLIHandler) {
		if len(rooms) > 0 {
			h.rooms = slices.Clone(rooms)
		}
	}
}

func WithEventTail(tail EventTail) Option {
	return func(h *CLIHandler) { h.tail = tail }
}

func NewCLIHandler(
	customers service.CustomerService,
	hotels service.HotelService,
	reservations service.ReservationService,
	out io.Writer,
	log *zap.Logger,
	opts ...Option,
) *CLIHandler {
	if log == nil {
		log = zap.NewNop()
	}
	h := &CLIHandler{
		customers:    customers,
		hotels:       hotels,
		reservations: reservations,
		out:          out,
		log:          log,
		rooms:        slices.Clone(models.DefaultRooms),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run dispatches args (without the program name) to a command.
func (h *CLIHandler) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(h.out, usage)
		return fmt.Errorf("%w: missing command", ErrUsage)
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "customer":
		return h.customer(ctx, rest)
	case "hotel":
		return h.hotel(ctx, rest)
	case "reservation":
		return h.reservation(ctx, rest)
	case "events":
		return h.events(ctx)
	case "help", "-h", "--help":
		fmt.Fprint(h.out, usage)
		return nil
	default:
		fmt.Fprint(h.out, usage)
		return fmt.Errorf("%w: unknown command %q", ErrUsage, cmd)
	}
}

func (h *CLIHandler) events(ctx context.Context) error {
	if h.tail == nil {
		return ErrEventsDisabled
	}
	return h.tail(ctx, h.out)
}

// ExitCode maps an error returned by Run to a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
		return 0
	case errors.Is(err, ErrUsage),
		errors.Is(err, models.ErrValidation),
		errors.Is(err, service.ErrNameTaken):
		return 2
	case errors.Is(err, service.ErrCustomerNotFound),
		errors.Is(err, service.ErrHotelNotFound),
		errors.Is(err, service.ErrReservationNotFound):
		return 3
	case errors.Is(err, models.ErrInvalidRange),
		errors.Is(err, models.ErrRoomNotFound),
		errors.Is(err, models.ErrRoomReserved),
		errors.Is(err, models.ErrNoReservation),
		errors.Is(err, service.ErrRoomUnavailable):
		return 4
	default:
		return 1
	}
}

// action splits "<action> [flags]" for a command group.
func action(group string, args []string) (string, []string, error) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return "", nil, fmt.Errorf("%w: %s needs an action", ErrUsage, group)
	}
	return args[0], args[1:], nil
}

func (h *CLIHandler) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(h.out)
	return fs
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %s: %v", ErrUsage, fs.Name(), err)
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: %s: unexpected argument %q", ErrUsage, fs.Name(), fs.Arg(0))
	}
	return nil
}

// required reports the first named flag left empty.
func required(values map[string]string, names ...string) error {
	for _, name := range names {
		if values[name] == "" {
			return fmt.Errorf("%w: --%s is required", ErrUsage, name)
		}
	}
	return nil
}

func unknownAction(group, act string) error {
	return fmt.Errorf("%w: unknown %s action %q", ErrUsage, group, act)
}
