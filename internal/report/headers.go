package report

// Headers is the SAIBA upload column order.
var Headers = []string{
	"Sno",
	"BrokerBranchCode",
	"BrokerBranch",
	"AreaCode",
	"CustCode",
	"CustName",
	"ClientCode(ShortName)",
	"Address",
	"City",
	"State",
	"Country",
	"Pin",
	"PhoneNo",
	"MobileNo",
	"DOB",
	"Fax",
	"Email",
	"PANNo",
	"CustGroupSAIBA",
	"VerticalType",
	"OrgType",
	"BusinessType",
	"RMCodeSAIBA",
	"SolicitCode",
	"CSCCodeSAIBA",
	"TCCodeSAIBA",
	"Ref/POS/MISP",
	"Ref/POS/MISPCodeSAIBA",
	"InsurerSAIBA",
	"InsurerBranchAutoCodeSAIBA",
	"PolicyTypeSAIBA",
	"ProductName",
	"VehicleRegnStatus",
	"VehicleNo",
	"Make",
	"Model",
	"Variant",
	"DateRegistration",
	"InvoiceDate",
	"YearofMan",
	"ChasisNo",
	"EngineNo",
	"CC",
	"Fuel",
	"RTO",
	"NCB",
	"ODD",
	"PCV/GCV/Misc",
	"Passenger/GVW",
	"BusPropDate",
	"StartDate",
	"ExpiryDate",
	"CoverNoteNo",
	"CovernoteProposalDate",
	"ProposalSubmissionDate",
	"PolicyNo",
	"PolicyIssueDate",
	"PolicyReceiveDate",
	"PolRecvdFormat",
	"BrokerBizType",
	"InsurerBizType",
	"SumInsured",
	"ODNetPremium",
	"Tp/Terroisem Prem",
	"OwnerDriver(LPD)",
	"RoadsideAssistance(WithoutBrokerage)",
	"GST/TaxAmount",
	"StampDuty",
	"GrossPrem",
	"Mode",
	"TranAmt",
	"TranNo",
	"TranDated",
	"BankName",
	"CessRate",
	"BrokRate",
	"GST/TaxRate",
	"TPBrokRate",
	"OwnerDriver%",
	"RewardRate",
	"RewardTPRate",
	"RewardRateOn",
	"ExpRate",
	"TPExpRate",
	"RefRate",
	"RefTPRate",
	"POS/MISPRate",
	"TPPOS/MISPRate",
	"PayAt",
	"CSCRate",
	"PolicyStatus",
	"Remarks",
	"OldControlNo",
	"ReceiptNo",
	"RefNo",
	"CampaignName",
	"Source",
	"PolicyVertical",
	"IsRenewable",
	"TPABranch",
	"TPAPer",
	"PremiumReceiptDate",
	"PremiumReceiptNo",
	"PremiumRemittingDate",
	"PrevPolicy_no",
	"Insured/ProposerName",
	"NomineeDetails",
	"file",
}

// ErrorHeaders is the error report column order.
var ErrorHeaders = []string{"file", "reason", "remarks"}

// constants are the fixed values of every SAIBA row. Empty values are filled in by hand after
// upload.
var constants = map[string]string{
	"Mode":                                 "Cash",
	"Country":                              "India",
	"BrokerBranchCode":                     "0",
	"BrokerBranch":                         "Head Office",
	"CustGroupSAIBA":                       "Other",
	"RMCodeSAIBA":                          "",
	"SolicitCode":                          "14",
	"CSCCodeSAIBA":                         "",
	"TCCodeSAIBA":                          "0",
	"Ref/POS/MISPCodeSAIBA":                "0",
	"VehicleRegnStatus":                    "N",
	"CoverNoteNo":                          "0",
	"PolRecvdFormat":                       "Recd. in Soft Copy",
	"BrokerBizType":                        "New",
	"InsurerBizType":                       "New",
	"OwnerDriver(LPD)":                     "0",
	"RoadsideAssistance(WithoutBrokerage)": "0",
	"StampDuty":                            "0",
	"TranNo":                               "0",
	"CessRate":                             "0",
	"BrokRate":                             "",
	"TPBrokRate":                           "0",
	"OwnerDriver%":                         "0",
	"RewardRate":                           "0",
	"RewardTPRate":                         "0",
	"RewardRateOn":                         "PREMIUM",
	"ExpRate":                              "0",
	"TPExpRate":                            "0",
	"RefRate":                              "0",
	"RefTPRate":                            "0",
	"POS/MISPRate":                         "0",
	"TPPOS/MISPRate":                       "0",
	"PayAt":                                "",
	"CSCRate":                              "0",
	"PolicyStatus":                         "LoggedIn",
	"Remarks":                              "Fresh",
	"CampaignName":                         "No Campaign",
}
