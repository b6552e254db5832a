package models

// Profile is the job profile submitted from the assessment form.
type Profile struct {
	JobTitle    string `json:"jobTitle" form:"jobTitle"`
	AgeRange    string `json:"ageRange" form:"ageRange"`
	Industry    string `json:"industry" form:"industry"`
	CompanySize string `json:"companySize" form:"companySize"`
	Region      string `json:"region" form:"region"`
}

// MissingFields returns the JSON names of empty profile fields, in form order.
func (p Profile) MissingFields() []string {
	var missing []string
	if p.JobTitle == "" {
		missing = append(missing, "jobTitle")
	}
	if p.AgeRange == "" {
		missing = append(missing, "ageRange")
	}
	if p.Industry == "" {
		missing = append(missing, "industry")
	}
	if p.CompanySize == "" {
		missing = append(missing, "companySize")
	}
	if p.Region == "" {
		missing = append(missing, "region")
	}
	return missing
}

type RiskAnalysis struct {
	RiskScore              int      `json:"riskScore"`
	RiskTier               RiskTier `json:"riskTier"`
	Summary                string   `json:"summary"`
	WhatTheDataSays        []string `json:"whatTheDataSays,omitempty"`
	KeyPotentialDisruptors []string `json:"keyPotentialDisruptors,omitempty"`
	ResearchReferences     []string `json:"researchReferences,omitempty"`
}

type InsightSection struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// InsightContent is the free-text shape used by the explore and invest routes.
type InsightContent struct {
	Category string `json:"category"`
	Content  string `json:"content"`
}

// InsightSections is the section-array shape used by the pathways route.
type InsightSections struct {
	Category string           `json:"category"`
	Sections []InsightSection `json:"sections"`
}

type PathwayInsight struct {
	Analysis   string `json:"analysis"`
	KeyFactors string `json:"keyFactors"`
	NextSteps  string `json:"nextSteps"`
	Reflection string `json:"reflection"`
}

type ExploreScore struct {
	IndustryTrends     string `json:"industryTrends"`
	TechDisruptors     string `json:"techDisruptors"`
	RoleConsiderations string `json:"roleConsiderations"`
}

type InvestScore struct {
	SkillsNeeded      string `json:"skillsNeeded"`
	ReskillingOptions string `json:"reskillingOptions"`
	AdjacentRoles     string `json:"adjacentRoles"`
}
