package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/trezcool/masomo-web/apps"
	"github.com/trezcool/masomo-web/core"
	"github.com/trezcool/masomo-web/core/notice"
)

func (cli *commandLine) runNotice(cmd string, args []string) error {
	fs := cli.newFlagSet("notice " + cmd)
	title := fs.String("title", "", "The notice's title (at least 5 characters).")
	details := fs.String("details", "", "The notice's details (at least 20 characters).")
	date := fs.String("date", "", "The notice's date, YYYY-MM-DD.")

	switch cmd {
	case "create":
		if err := parseFlags(fs, args); err != nil {
			return err
		}
		return cli.createNotice(notice.NewNotice{Title: *title, Details: *details, Date: *date})
	case "edit":
		from := fs.String("from", "", "The notice document to edit.")
		save := fs.Bool("save", false, "Write the edited notice back to the document.")
		if err := parseFlags(fs, args); err != nil {
			return err
		}
		if *from == "" {
			fs.Usage()
			return errHelp
		}
		var uu notice.UpdateNotice
		if isSet(fs, "title") {
			uu.Title = title
		}
		if isSet(fs, "details") {
			uu.Details = details
		}
		if isSet(fs, "date") {
			uu.Date = date
		}
		return cli.editNotice(*from, uu, *save)
	case "check":
		if err := parseFlags(fs, args); err != nil {
			return err
		}
		return cli.checkNotice(notice.NewNotice{Title: *title, Details: *details, Date: *date})
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) formDeps() notice.FormDeps {
	return notice.FormDeps{
		Validate:   cli.validate,
		Translator: cli.translator,
		Service:    cli.noticeSvc,
	}
}

func (cli *commandLine) createNotice(nn notice.NewNotice) error {
	fields := []struct {
		name  string
		value *string
	}{
		{notice.FieldTitle, &nn.Title},
		{notice.FieldDetails, &nn.Details},
		{notice.FieldDate, &nn.Date},
	}
	for _, f := range fields {
		if *f.value != "" {
			continue
		}
		v, err := cli.prompt(f.name)
		if err != nil {
			return err
		}
		*f.value = v
	}

	form := notice.NewCreateForm(cli.formDeps())
	for _, f := range fields {
		if err := form.Set(f.name, *f.value); err != nil {
			return err
		}
	}
	n, err := cli.submit(form)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cli.out, "notice created: %s\n", n.ID)
	return nil
}

func (cli *commandLine) editNotice(path string, uu notice.UpdateNotice, save bool) error {
	orig, err := readNotice(path)
	if err != nil {
		return err
	}

	form := notice.NewEditForm(cli.formDeps(), orig)
	form.Apply(uu)
	changes := form.Changes()
	if changes == "" {
		_, _ = fmt.Fprintln(cli.out, "no changes")
		return nil
	}
	_, _ = fmt.Fprint(cli.out, changes)

	n, err := cli.submit(form)
	if err != nil {
		return err
	}
	if save {
		doc, err := notice.Marshal(n)
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, doc, 0o644); err != nil {
			return errors.Wrapf(err, "saving %s", path)
		}
	}
	_, _ = fmt.Fprintf(cli.out, "notice updated: %s\n", n.ID)
	return nil
}

func (cli *commandLine) checkNotice(nn notice.NewNotice) error {
	errs := notice.Check(cli.validate, cli.translator, nn)
	if len(errs) > 0 {
		_, _ = fmt.Fprintln(cli.out, "invalid notice:")
		return cli.printFieldErrors(errs)
	}
	_, _ = fmt.Fprintln(cli.out, "valid notice")
	return nil
}

func (cli *commandLine) submit(form *notice.Form) (notice.Notice, error) {
	n, err := form.Submit(context.Background())
	if err != nil {
		if _, ok := errors.Cause(err).(*core.ValidationError); ok {
			_, _ = fmt.Fprintln(cli.out, "invalid notice:")
			return notice.Notice{}, cli.printFieldErrors(form.Errors())
		}
		cli.logger.Error("submitting notice", err)
		return notice.Notice{}, err
	}
	return n, nil
}

func readNotice(path string) (notice.Notice, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return notice.Notice{}, apps.NewArgumentError("from", "%v", err)
	}
	n, err := notice.Unmarshal(data)
	if err != nil {
		return notice.Notice{}, apps.NewArgumentError("from", "%s: %v", path, err)
	}
	return n, nil
}
