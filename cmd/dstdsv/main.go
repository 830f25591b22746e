// Command dstdsv is a test utility for Imada DST/DSV force gauges.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fdupeyron/go-dstdsv/discovery"
	"github.com/fdupeyron/go-dstdsv/gauge"
	"github.com/fdupeyron/go-dstdsv/protocol"
	"github.com/fdupeyron/go-dstdsv/transport"
)

var (
	log = logrus.New()

	// Global flags
	portFlag    string
	rs232Flag   bool
	timeoutFlag time.Duration
	verboseFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "dstdsv",
	Short: "Imada DST/DSV force gauge utility",
	Long: `dstdsv talks to Imada DST/DSV series force gauges over USB or RS232C.
You can list attached gauges, read measurements, reset the display,
change the unit and mode, set comparator limits, and power the device off.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verboseFlag {
			log.SetLevel(logrus.DebugLevel)
		}
	},
}

func init() {
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	rootCmd.PersistentFlags().StringVarP(&portFlag, "port", "p", "", "Serial port path (default: first discovered gauge)")
	rootCmd.PersistentFlags().BoolVar(&rs232Flag, "rs232", false, "Use RS232C link parameters instead of USB")
	rootCmd.PersistentFlags().DurationVar(&timeoutFlag, "timeout", 0, "Reply timeout (default: link preset)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(measureCmd)
	rootCmd.AddCommand(zeroCmd)
	rootCmd.AddCommand(unitCmd)
	rootCmd.AddCommand(modeCmd)
	rootCmd.AddCommand(limitsCmd)
	rootCmd.AddCommand(offCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List attached gauges",
	RunE: func(cmd *cobra.Command, args []string) error {
		devices, err := discovery.Find(discovery.USBEnumerator{})
		if err != nil {
			return err
		}
		if len(devices) == 0 {
			fmt.Println("Found no compatible device.")
			return nil
		}

		fmt.Println("Found compatible devices:")
		for _, d := range devices {
			fmt.Printf("- %s\n", d)
		}
		return nil
	},
}

var (
	samplesFlag  int
	intervalFlag time.Duration
)

var measureCmd = &cobra.Command{
	Use:   "measure",
	Short: "Read measurements from the gauge",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		for i := 0; i < samplesFlag; i++ {
			if i > 0 {
				time.Sleep(intervalFlag)
			}

			m, err := s.Measure()
			if err != nil {
				return err
			}
			fmt.Printf("%s %s\t%s\t%s\n", m.Value, m.Unit, m.Mode, m.State)
		}
		return nil
	},
}

func init() {
	measureCmd.Flags().IntVarP(&samplesFlag, "samples", "n", 1, "Number of samples to read")
	measureCmd.Flags().DurationVarP(&intervalFlag, "interval", "i", 100*time.Millisecond, "Delay between samples")
}

var zeroCmd = &cobra.Command{
	Use:   "zero",
	Short: "Reset the measurement to zero",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *gauge.Session) error {
			return s.Zero()
		})
	},
}

var unitCmd = &cobra.Command{
	Use:       "unit {N|kgf}",
	Short:     "Set the measurement unit",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"N", "kgf"},
	RunE: func(cmd *cobra.Command, args []string) error {
		unit := protocol.UnitNewton
		if args[0] == "kgf" {
			unit = protocol.UnitKilogramForce
		}
		return withSession(func(s *gauge.Session) error {
			return s.UnitSet(unit)
		})
	},
}

var modeCmd = &cobra.Command{
	Use:       "mode {realtime|peak}",
	Short:     "Set the measurement mode",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"realtime", "peak"},
	RunE: func(cmd *cobra.Command, args []string) error {
		mode := protocol.ModeRealtime
		if args[0] == "peak" {
			mode = protocol.ModePeak
		}
		return withSession(func(s *gauge.Session) error {
			return s.ModeSet(mode)
		})
	},
}

var limitsCmd = &cobra.Command{
	Use:   "limits HIGH LOW",
	Short: "Set the comparator high and low set points",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		high, err := decimal.NewFromString(args[0])
		if err != nil {
			return fmt.Errorf("high limit %q: %w", args[0], err)
		}
		low, err := decimal.NewFromString(args[1])
		if err != nil {
			return fmt.Errorf("low limit %q: %w", args[1], err)
		}
		return withSession(func(s *gauge.Session) error {
			return s.SetLimitPoints(high, low)
		})
	},
}

var offCmd = &cobra.Command{
	Use:   "off",
	Short: "Power the gauge off",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *gauge.Session) error {
			return s.PowerOff()
		})
	},
}

// openSession opens a session to the requested port, or to the first
// discovered gauge when no port was given.
func openSession() (*gauge.Session, error) {
	path := portFlag
	if path == "" {
		desc, err := discovery.FindFirst(discovery.USBEnumerator{})
		if err != nil {
			return nil, err
		}
		log.WithField("device", desc.String()).Info("using discovered gauge")
		path = desc.Path
	}

	opts := []gauge.Option{gauge.WithLogger(logrusAdapter{log})}
	if rs232Flag {
		opts = append(opts, gauge.WithLink(transport.RS232Config()))
	}
	if timeoutFlag > 0 {
		opts = append(opts, gauge.WithReadTimeout(timeoutFlag))
	}

	log.WithField("port", path).Debug("opening session")
	return gauge.Open(path, opts...)
}

// withSession runs fn inside an open session, closing it on every path.
func withSession(fn func(*gauge.Session) error) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}

// logrusAdapter exposes a logrus logger through the gauge.Logger
// interface.
type logrusAdapter struct {
	l *logrus.Logger
}

func (a logrusAdapter) fields(keysAndValues []interface{}) logrus.Fields {
	f := logrus.Fields{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprint(keysAndValues[i])
		}
		f[key] = keysAndValues[i+1]
	}
	return f
}

func (a logrusAdapter) Debug(msg string, keysAndValues ...interface{}) {
	a.l.WithFields(a.fields(keysAndValues)).Debug(msg)
}

func (a logrusAdapter) Info(msg string, keysAndValues ...interface{}) {
	a.l.WithFields(a.fields(keysAndValues)).Info(msg)
}

func (a logrusAdapter) Error(msg string, keysAndValues ...interface{}) {
	a.l.WithFields(a.fields(keysAndValues)).Error(msg)
}
