// Package seed loads the built-in knowledge base so a fresh install can
// answer calls before any documents are added.
package seed

import (
	"context"
	"fmt"

	"github.com/switchboard-labs/switchboard/internal/core/ports/driving"
	"github.com/switchboard-labs/switchboard/internal/logger"
)

// Documents is the built-in knowledge base.
var Documents = []driving.DocumentInput{
	{
		Title:    "Billing FAQ - How to Check Your Bill",
		Category: "billing",
		Tags:     []string{"billing", "faq", "payment", "invoice"},
		Content: `How to Check Your Bill:

To check your current bill:
1. Log into your account with your username and password
2. Navigate to the 'Billing' section from the main menu
3. Click on 'View Current Bill'
4. You can see itemized charges and payment due date

Your bill is automatically generated on the 1st of each month.
You can view up to 12 months of billing history.
If you have questions about specific charges, please contact our billing department.

Payment Methods:
- Credit/Debit Card
- Bank Transfer
- Wire Transfer
- Check (by mail)

Late fees apply if payment is not received by the due date.
You can set up automatic payments to avoid missed deadlines.`,
	},
	{
		Title:    "Common Technical Issues and Solutions",
		Category: "technical",
		Tags:     []string{"technical", "troubleshooting", "support", "browser"},
		Content: `Troubleshooting Common Issues:

Connection Problems:
- Restart your device
- Check your internet connection speed
- Try connecting to a different network
- Disable VPN temporarily
- Clear browser cache and cookies

Still having issues? Try:
1. Update your browser to the latest version
2. Disable browser extensions one-by-one
3. Try accessing from a different device
4. Check if the service is operational at our status page

Performance Issues:
- Close unnecessary applications
- Clear browser cache
- Check your device storage
- Reduce number of open tabs
- Try incognito/private mode

If problems persist, contact technical support with:
- Your device model
- Browser and version
- Error messages (if any)
- Time issue occurred
- Steps already taken`,
	},
	{
		Title:    "Account Security and Management",
		Category: "account",
		Tags:     []string{"security", "account", "privacy", "password"},
		Content: `Secure Your Account:

Password Security:
- Use a minimum of 12 characters
- Include uppercase, lowercase, numbers, and special characters
- Don't use personal information (birthdate, names)
- Change password every 90 days
- Never share your password

Two-Factor Authentication (2FA):
1. Go to Account Settings > Security
2. Enable "Two-Factor Authentication"
3. Choose method: SMS, Email, or Authenticator App
4. Verify with code when logging in

What to Do if Compromised:
1. Change your password immediately
2. Enable 2FA if not already active
3. Review recent account activity
4. Check linked payment methods
5. Contact support if unauthorized charges found`,
	},
	{
		Title:    "Subscription Plans and Pricing",
		Category: "billing",
		Tags:     []string{"pricing", "plans", "subscription", "billing"},
		Content: `Available Plans:

Basic Plan - $9.99/month
- Up to 5 projects
- 5GB storage
- Community support
- Email support (24-48 hours)

Professional Plan - $29.99/month
- Up to 50 projects
- 100GB storage
- Priority email support (24 hours)
- Phone support (business hours)
- Advanced analytics

Enterprise Plan - Custom pricing
- Unlimited projects
- Unlimited storage
- 24/7 dedicated support
- Custom integrations
- Dedicated account manager

Plan Features:
- Cancel anytime (no long-term contracts)
- Upgrade/downgrade anytime
- No setup fees
- 30-day free trial available
- Annual billing gets 15% discount`,
	},
	{
		Title:    "Cancellation and Refund Policy",
		Category: "billing",
		Tags:     []string{"cancellation", "refund", "billing"},
		Content: `Cancelling Your Subscription:

1. Log into your account
2. Go to Account > Subscription
3. Click "Cancel Subscription"
4. Confirm the cancellation

Your service stays active until the end of the paid billing period.
There are no cancellation fees and no long-term contracts.

Refunds:
- Full refund within 30 days of purchase
- Refunds are issued to the original payment method
- Processing takes 5-10 business days
- Annual plans are refunded pro-rata after 30 days

If you are cancelling because of a problem with the service,
contact support first; most issues can be resolved quickly.`,
	},
	{
		Title:    "Getting Started Guide",
		Category: "general",
		Tags:     []string{"getting-started", "onboarding", "tutorial", "help"},
		Content: `Welcome! Getting Started:

Step 1: Create Your Account
1. Click Sign Up on the homepage
2. Enter your email address
3. Create a strong password
4. Verify your email
5. Complete your profile

Step 2: Set Up Your First Project
1. Go to Dashboard
2. Click "New Project"
3. Name your project
4. Choose your plan
5. Configure initial settings

Need Help?
- Read the FAQ section
- Browse the knowledge base
- Contact the support team
- Phone support is available 24/7`,
	},
}

// Run ingests the built-in documents into an empty knowledge base. A
// non-empty store is left untouched so reseeding never duplicates content.
func Run(ctx context.Context, knowledge driving.KnowledgeService) error {
	existing, err := knowledge.ListDocuments(ctx)
	if err != nil {
		return fmt.Errorf("list documents: %w", err)
	}
	if len(existing) > 0 {
		logger.Debug("Knowledge base already has %d documents, skipping seed", len(existing))
		return nil
	}

	for _, doc := range Documents {
		if _, err := knowledge.AddDocument(ctx, doc); err != nil {
			return fmt.Errorf("seed %q: %w", doc.Title, err)
		}
		logger.Debug("Seeded %q", doc.Title)
	}

	logger.Info("Seeded %d knowledge base documents", len(Documents))
	return nil
}
