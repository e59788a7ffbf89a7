package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"authflow/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

type emailTemplate struct {
	subject  string
	htmlPart string
	textPart string
}

func templates(cfg *config.Config) map[string]emailTemplate {
	return map[string]emailTemplate{
		cfg.AwsEmailActivateAccountTemplate: {
			subject:  "Activate your account",
			htmlPart: `<p>Hi {{name}},</p><p>Your activation code is <b>{{activationCode}}</b>.</p><p><a href="{{activationUrl}}">Activate account</a></p>`,
			textPart: "Hi {{name}},\r\nYour activation code is {{activationCode}}.\r\nActivate your account: {{activationUrl}}",
		},
		cfg.AwsEmailPasswordResetTemplate: {
			subject:  "Reset your password",
			htmlPart: `<p>Hi {{name}},</p><p>Follow <a href="{{passwordResetUrl}}">this link</a> to choose a new password.</p><p>If you did not request a reset, ignore this email.</p>`,
			textPart: "Hi {{name}},\r\nChoose a new password: {{passwordResetUrl}}\r\nIf you did not request a reset, ignore this email.",
		},
		cfg.AwsEmailPasswordChangedTemplate: {
			subject:  "Your password was changed",
			htmlPart: `<p>Hi {{name}},</p><p>Your password was changed at {{changedAt}}. All sessions were signed out.</p>`,
			textPart: "Hi {{name}},\r\nYour password was changed at {{changedAt}}. All sessions were signed out.",
		},
	}
}

func main() {
	deleteTemplates := flag.Bool("delete", false, "delete the templates instead of creating them")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		exit(err)
	}

	awsCfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(cfg.AwsRegion),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				cfg.AwsAccessKey,
				cfg.AwsSecretKey,
				"",
			),
		),
	)
	if err != nil {
		exit(err)
	}

	svc := ses.NewFromConfig(awsCfg)
	for name, template := range templates(cfg) {
		if *deleteTemplates {
			deleteEmailTemplate(svc, name)
		} else {
			createEmailTemplate(svc, name, template)
		}
	}
}

func createEmailTemplate(svc *ses.Client, name string, template emailTemplate) {
	result, err := svc.CreateTemplate(context.Background(), &ses.CreateTemplateInput{
		Template: &types.Template{
			SubjectPart:  aws.String(template.subject),
			HtmlPart:     aws.String(template.htmlPart),
			TextPart:     aws.String(template.textPart),
			TemplateName: aws.String(name),
		},
	})
	if err != nil {
		exit(err)
	}

	fmt.Println("Created:", name)
	fmt.Println(result)
}

func deleteEmailTemplate(svc *ses.Client, name string) {
	result, err := svc.DeleteTemplate(context.Background(), &ses.DeleteTemplateInput{
		TemplateName: aws.String(name),
	})
	if err != nil {
		exit(err)
	}

	fmt.Println("Deleted:", name)
	fmt.Println(result)
}

func exit(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
