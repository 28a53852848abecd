package history

var builtinCases = []Case{
	{TicketID: "TECH_021", IssueCategory: "Software Installation Failure", Sentiment: "Frustrated", Priority: "High", Solution: "Disable antivirus and retry installation", ResolutionStatus: "Resolved", DateOfResolution: "2025-03-17"},
	{TicketID: "TECH_022", IssueCategory: "Software Installation Failure", Sentiment: "Frustrated", Priority: "High", Solution: "Download from direct link", ResolutionStatus: "Resolved", DateOfResolution: "2025-03-17"},
	{TicketID: "TECH_023", IssueCategory: "Software Installation Failure", Sentiment: "Frustrated", Priority: "High", Solution: "Update to latest version of antivirus", ResolutionStatus: "Resolved", DateOfResolution: "2025-03-17"},
	{TicketID: "TECH_024", IssueCategory: "Network Connectivity Issue", Sentiment: "Confused", Priority: "Medium", Solution: "Check app permissions for Local Network", ResolutionStatus: "Resolved", DateOfResolution: "2025-03-16"},
	{TicketID: "TECH_025", IssueCategory: "Network Connectivity Issue", Sentiment: "Confused", Priority: "Medium", Solution: "Clear app cache and relog", ResolutionStatus: "Resolved", DateOfResolution: "2025-03-16"},
	{TicketID: "TECH_026", IssueCategory: "Network Connectivity Issue", Sentiment: "Confused", Priority: "Medium", Solution: "Reinstall the app", ResolutionStatus: "Resolved", DateOfResolution: "2025-03-16"},
	{TicketID: "TECH_027", IssueCategory: "Device Compatibility Error", Sentiment: "Annoyed", Priority: "Critical", Solution: "Rollback app to version 4.9", ResolutionStatus: "Resolved", DateOfResolution: "2025-03-15"},
	{TicketID: "TECH_028", IssueCategory: "Device Compatibility Error", Sentiment: "Annoyed", Priority: "Critical", Solution: "Offer a discount on a compatible thermostat", ResolutionStatus: "Resolved", DateOfResolution: "2025-03-15"},
	{TicketID: "TECH_029", IssueCategory: "Device Compatibility Error", Sentiment: "Annoyed", Priority: "Critical", Solution: "Contact thermostat support for an update", ResolutionStatus: "Resolved", DateOfResolution: "2025-03-15"},
	{TicketID: "TECH_030", IssueCategory: "Account Synchronization Bug", Sentiment: "Anxious", Priority: "High", Solution: "Reset sync token manually", ResolutionStatus: "Resolved", DateOfResolution: "2025-03-14"},
	{TicketID: "TECH_031", IssueCategory: "Account Synchronization Bug", Sentiment: "Anxious", Priority: "High", Solution: "Force Full Sync on both devices", ResolutionStatus: "Resolved", DateOfResolution: "2025-03-14"},
	{TicketID: "TECH_032", IssueCategory: "Account Synchronization Bug", Sentiment: "Anxious", Priority: "High", Solution: "Clear app cache and relog", ResolutionStatus: "Resolved", DateOfResolution: "2025-03-14"},
	{TicketID: "TECH_033", IssueCategory: "Payment Gateway Integration Failure", Sentiment: "Urgent", Priority: "Critical", Solution: "Upgrade server to TLS 1.3", ResolutionStatus: "Resolved", DateOfResolution: "2025-03-13"},
	{TicketID: "TECH_034", IssueCategory: "Payment Gateway Integration Failure", Sentiment: "Urgent", Priority: "Critical", Solution: "Verify SSL certificate settings", ResolutionStatus: "Resolved", DateOfResolution: "2025-03-13"},
	{TicketID: "TECH_035", IssueCategory: "Payment Gateway Integration Failure", Sentiment: "Urgent", Priority: "Critical", Solution: "Use a different gateway API", ResolutionStatus: "Resolved", DateOfResolution: "2025-03-13"},
	{TicketID: "TECH_036", IssueCategory: "Payment Gateway Integration Failure", Sentiment: "Urgent", Priority: "Critical", Solution: "Check server firewall settings", ResolutionStatus: "Resolved", DateOfResolution: "2025-03-13"},
}

var builtinConversations = []Conversation{
	{
		Category: "Software Installation Failure",
		Transcript: `Customer: I'm having trouble installing your software. It keeps failing at 75%.
Agent: I understand that's frustrating. Could you tell me if you have any antivirus running?
Customer: Yes, I have Norton.
Agent: That might be interfering. Could you try temporarily disabling Norton and attempting the installation again?
Customer: That worked! Thank you.`,
	},
	{
		Category: "Network Connectivity Issue",
		Transcript: `Customer: Your app won't connect to my network even though everything else works fine.
Agent: That's strange. Are you on WiFi or cellular data?
Customer: WiFi at home.
Agent: Let's check if the app has proper network permissions. On your device, could you go to Settings > Apps > Our App > Permissions?
Customer: It says the app doesn't have Local Network permission!
Agent: Let's enable that and try again.
Customer: Perfect, it's working now.`,
	},
	{
		Category: "Device Compatibility Error",
		Transcript: `Customer: I'm getting an error saying my smart thermostat isn't compatible with your latest update.
Agent: I apologize for the inconvenience. What model of thermostat do you have?
Customer: I have the HomeTemp TX-200.
Agent: I see the issue. The TX-200 requires app version 4.9 for compatibility. Our latest update (5.0) has known issues with it. Let me help you downgrade.
Customer: Thank you, that fixed it.`,
	},
	{
		Category: "Account Synchronization Bug",
		Transcript: `Customer: My account isn't syncing between my phone and tablet.
Agent: That's definitely frustrating. When did you first notice this issue?
Customer: After the last update, about 3 days ago.
Agent: We've identified a sync token issue in that update. Let me walk you through manually resetting it.
Customer: That's fixed it! Everything is showing up now.`,
	},
	{
		Category: "Payment Gateway Integration Failure",
		Transcript: `Customer: We're trying to integrate your payment API but keep getting SSL handshake errors.
Agent: That suggests there might be a TLS version mismatch. What version of TLS is your server running?
Customer: We're on TLS 1.2.
Agent: Our new gateway requires TLS 1.3. You'll need to upgrade your server configuration.
Customer: We'll make that change and test again. Thanks for identifying the issue.`,
	},
}
