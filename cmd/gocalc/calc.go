package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/njchilds90/gocalc"
)

func jsonFlag() cli.Flag {
	return &cli.BoolFlag{Name: "json", Aliases: []string{"j"}, Usage: "Output as JSON"}
}

func printJSON(c *cli.Context, v interface{}) error {
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func evalCommand() *cli.Command {
	return &cli.Command{
		Name:      "eval",
		Aliases:   []string{"e"},
		Usage:     "Evaluate expressions; several run concurrently",
		ArgsUsage: "<expression>...",
		Flags:     []cli.Flag{jsonFlag()},
		Action:    evalAction,
	}
}

func evalAction(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}
	exprs := c.Args().Slice()
	if len(exprs) == 0 {
		return cli.Exit("eval needs an expression", 2)
	}
	results, err := evaluatorFor(cfg).EvaluateBatch(c.Context, exprs, 0)
	if err != nil {
		return err
	}
	if c.Bool("json") {
		out := make([]map[string]interface{}, len(results))
		for i, r := range results {
			item := map[string]interface{}{"expression": r.Expression, "string": r.Display}
			if r.Err != nil {
				item["error"] = r.Err.Error()
			} else {
				item["value"] = r.Value
			}
			out[i] = item
		}
		return printJSON(c, out)
	}
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(c.App.ErrWriter, "%s: %v\n", r.Expression, r.Err)
			continue
		}
		if len(results) > 1 {
			fmt.Fprintf(c.App.Writer, "%s = %s\n", r.Expression, r.Display)
		} else {
			fmt.Fprintln(c.App.Writer, r.Display)
		}
	}
	if failed > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

func solveCommand() *cli.Command {
	return &cli.Command{
		Name:      "solve",
		Aliases:   []string{"s"},
		Usage:     "Solve a linear or quadratic equation in x, e.g. \"x^2-5x+6=0\"",
		ArgsUsage: "<equation>",
		Flags:     []cli.Flag{jsonFlag()},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfigWithOverrides(c)
			if err != nil {
				return err
			}
			input := strings.Join(c.Args().Slice(), " ")
			sol := evaluatorFor(cfg).SolveEquation(input)
			if c.Bool("json") {
				return printJSON(c, gocalc.HandleToolCallContext(c.Context, gocalc.ToolRequest{
					Tool:   "solve_equation",
					Params: map[string]interface{}{"equation": input, "angle": cfg.AngleMode},
				}))
			}
			fmt.Fprintln(c.App.Writer, sol.Format(cfg.Precision))
			if sol.Kind == gocalc.KindInvalid {
				return cli.Exit(sol.Err, 1)
			}
			return nil
		},
	}
}

func rewriteCommand() *cli.Command {
	return &cli.Command{
		Name:      "rewrite",
		Usage:     "Show an expression in add/sub/mul/div/pow helper-call form",
		ArgsUsage: "<expression>",
		Action: func(c *cli.Context) error {
			out, err := gocalc.Rewrite(strings.Join(c.Args().Slice(), " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, out)
			return nil
		},
	}
}

func parseCommand() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "Parse a complex literal such as 3-4i",
		ArgsUsage: "<literal>",
		Flags:     []cli.Flag{jsonFlag()},
		Action: func(c *cli.Context) error {
			z := gocalc.ParseComplex(strings.Join(c.Args().Slice(), ""))
			if c.Bool("json") {
				return printJSON(c, gocalc.ComplexValue(z))
			}
			fmt.Fprintf(c.App.Writer, "%s (real %v, imag %v, |z| %s, arg %s)\n",
				z, z.Real, z.Imag, gocalc.FormatNumber(z.Abs()), gocalc.FormatNumber(z.Arg()))
			return nil
		},
	}
}

func convertCommand() *cli.Command {
	toolAction := func(tool string, build func(c *cli.Context) (map[string]interface{}, error)) cli.ActionFunc {
		return func(c *cli.Context) error {
			cfg, err := loadConfigWithOverrides(c)
			if err != nil {
				return err
			}
			params, err := build(c)
			if err != nil {
				return err
			}
			if _, ok := params["angle"]; !ok {
				params["angle"] = cfg.AngleMode
			}
			resp := gocalc.HandleToolCallContext(c.Context, gocalc.ToolRequest{Tool: tool, Params: params})
			if resp.Error != "" {
				return cli.Exit(resp.Error, 1)
			}
			fmt.Fprintln(c.App.Writer, resp.String)
			return nil
		}
	}
	twoNumbers := func(a, b string) func(c *cli.Context) (map[string]interface{}, error) {
		return func(c *cli.Context) (map[string]interface{}, error) {
			if c.NArg() != 2 {
				return nil, cli.Exit("want two numbers", 2)
			}
			var p, q float64
			if _, err := fmt.Sscan(c.Args().Get(0), &p); err != nil {
				return nil, err
			}
			if _, err := fmt.Sscan(c.Args().Get(1), &q); err != nil {
				return nil, err
			}
			return map[string]interface{}{a: p, b: q}, nil
		}
	}

	return &cli.Command{
		Name:  "convert",
		Usage: "Number base, statistics, polar/rectangular and DMS conversions",
		Subcommands: []*cli.Command{
			{
				Name:      "base",
				Usage:     "Floor of a result in bin, oct, hex or dec",
				ArgsUsage: "<bin|oct|hex|dec> <expression>",
				Action: toolAction("to_base", func(c *cli.Context) (map[string]interface{}, error) {
					return map[string]interface{}{
						"base":       c.Args().First(),
						"expression": strings.Join(c.Args().Tail(), " "),
					}, nil
				}),
			},
			{
				Name:      "stats",
				Usage:     "Mean and population standard deviation",
				ArgsUsage: "<n1,n2,...>",
				Action: toolAction("statistics", func(c *cli.Context) (map[string]interface{}, error) {
					return map[string]interface{}{"numbers": strings.Join(c.Args().Slice(), ",")}, nil
				}),
			},
			{
				Name:      "polar",
				Usage:     "Rectangular x y to polar r θ",
				ArgsUsage: "<x> <y>",
				Action:    toolAction("to_polar", twoNumbers("x", "y")),
			},
			{
				Name:      "rect",
				Usage:     "Polar r θ to rectangular x y",
				ArgsUsage: "<r> <theta>",
				Action:    toolAction("to_rectangular", twoNumbers("r", "theta")),
			},
			{
				Name:      "dms",
				Usage:     "Decimal degrees to degrees, minutes and seconds",
				ArgsUsage: "<degrees>",
				Action: toolAction("to_dms", func(c *cli.Context) (map[string]interface{}, error) {
					var d float64
					if _, err := fmt.Sscan(c.Args().First(), &d); err != nil {
						return nil, err
					}
					return map[string]interface{}{"degrees": d}, nil
				}),
			},
		},
	}
}
