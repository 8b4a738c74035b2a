package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/trezcool/masomo-web/core/seo"
)

func (cli *commandLine) runSeo(cmd string, args []string) error {
	fs := cli.newFlagSet("seo " + cmd)

	switch cmd {
	case "page":
		var p seo.Page
		fs.StringVar(&p.Title, "title", "", "The page title; the site title when empty.")
		fs.StringVar(&p.Path, "path", "/", "The page path.")
		fs.StringVar(&p.Description, "description", "", "The page description.")
		fs.StringVar(&p.Image, "image", "", "The page image.")
		fs.StringVar(&p.Type, "type", "", "The Open Graph type.")
		fs.BoolVar(&p.NoIndex, "noindex", false, "Keep the page out of search engines.")
		if err := parseFlags(fs, args); err != nil {
			return err
		}
		return cli.printMeta(cli.seo.Page(p))
	case "notice":
		from := fs.String("from", "", "The notice document.")
		if err := parseFlags(fs, args); err != nil {
			return err
		}
		if *from == "" {
			fs.Usage()
			return errHelp
		}
		n, err := readNotice(*from)
		if err != nil {
			return err
		}
		return cli.printMeta(cli.seo.Notice(n))
	case "org":
		if err := parseFlags(fs, args); err != nil {
			return err
		}
		data, err := cli.seo.Organization()
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "", "  "); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(cli.out, buf.String())
		return nil
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) printMeta(m seo.Meta) error {
	head, err := m.HTML()
	if err != nil {
		return err
	}
	_, _ = fmt.Fprint(cli.out, head)
	return nil
}
