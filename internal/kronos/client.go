// Package kronos talks to the external workforce-management API that holds
// schedule and payroll-code data. Two reads are wrapped: the schedule
// multi-read used by timecard generation and the person multi-read behind the
// employee directory and roster sync.
package kronos

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/firedesk/timecard/internal/shared"
)

// Client wraps the Kronos HTTP API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient constructs a new client.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ScheduleEntry is one worked slot on a timecard.
type ScheduleEntry struct {
	Date       string  `json:"date"`
	EmployeeID string  `json:"employee_id"`
	Code       string  `json:"code"`
	Hours      float64 `json:"hours"`
	Unit       string  `json:"unit"`
	Position   string  `json:"position"`
}

// ScheduleData is the processed payload a timecard is rendered from.
type ScheduleData struct {
	Entries         []ScheduleEntry    `json:"scheduleData"`
	WorkCodeTotals  map[string]float64 `json:"workCodeTotals"`
	GrandTotalHours float64            `json:"grandTotalHours"`
	EmployeeRank    string             `json:"employeeRank"`
	EmployeeName    string             `json:"employeeName"`
	PayPeriod       string             `json:"payPeriod"`
}

// raw wire shapes; only the fields the timecard needs are decoded.
type multiReadResponse struct {
	Schedules []struct {
		Date     string `json:"date"`
		Schedule []struct {
			Person struct {
				EmployeeID string `json:"employeeId"`
				Name       string `json:"name"`
			} `json:"person"`
			PersonSchedule []personSchedule `json:"personSchedule"`
		} `json:"schedule"`
	} `json:"schedules"`
}

type personSchedule struct {
	WorkCode struct {
		PayrollCode string `json:"payrollCode"`
	} `json:"workCode"`
	PayrollDurationInHours float64 `json:"payrollDurationInHours"`
	Organization           struct {
		PhysicalUnit struct {
			Abbreviation string `json:"abbreviation"`
		} `json:"physicalUnit"`
		Position struct {
			Rank struct {
				Abbreviation string `json:"abbreviation"`
			} `json:"rank"`
		} `json:"position"`
	} `json:"organization"`
	Profile struct {
		Name string `json:"name"`
	} `json:"profile"`
}

// Schedule fetches and flattens the schedule for one employee between two
// inclusive dates (YYYY-MM-DD).
func (c *Client) Schedule(ctx context.Context, employeeID, fromDate, toDate string) (ScheduleData, error) {
	payload := map[string]any{
		"fromDate": fromDate,
		"thruDate": toDate,
		"filters": map[string]any{
			"persons": map[string]any{
				"idType": "EMPLOYEE",
				"ids":    []string{employeeID},
			},
			"workCodeType": map[string]any{
				"includeNonWorkingCodes": true,
				"includeWorkingCodes":    true,
			},
			"includeChargeCodes":      true,
			"includeHiddenCodes":      false,
			"includeWorkCodes":        true,
			"includePayrollCodes":     true,
			"recordTypes":             []string{"SCHEDULE", "ASSIGNMENT", "EXCEPTION", "VACANCY", "POSITION", "REMOVE_EXCEPTION"},
			"includeInactivePersonOrProfileExceptions": true,
			"includeIntegrationMappedCodesOnly":        false,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return ScheduleData{}, fmt.Errorf("kronos: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/api/v1/wfts/schedule/multi_read", c.baseURL), bytes.NewReader(body))
	if err != nil {
		return ScheduleData{}, fmt.Errorf("kronos: build request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ScheduleData{}, fmt.Errorf("kronos: schedule multi_read: %w: %v", shared.ErrUpstream, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 400 {
		return ScheduleData{}, fmt.Errorf("kronos: schedule multi_read status %d: %w", resp.StatusCode, shared.ErrUpstream)
	}

	var wire multiReadResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return ScheduleData{}, fmt.Errorf("kronos: decode response: %w: %v", shared.ErrUpstream, err)
	}

	data := ScheduleData{
		WorkCodeTotals: map[string]float64{},
		PayPeriod:      fmt.Sprintf("%s to %s", fromDate, toDate),
	}
	for _, day := range wire.Schedules {
		for _, entry := range day.Schedule {
			if data.EmployeeName == "" && entry.Person.Name != "" {
				data.EmployeeName = entry.Person.Name
			}
			for _, ps := range entry.PersonSchedule {
				if ps.WorkCode.PayrollCode == "" {
					continue
				}
				if data.EmployeeRank == "" && ps.Profile.Name != "" {
					data.EmployeeRank = ps.Profile.Name
				}
				unit := ps.Organization.PhysicalUnit.Abbreviation
				if unit == "" {
					unit = "N/A"
				}
				position := ps.Organization.Position.Rank.Abbreviation
				if position == "" {
					position = "N/A"
				}
				data.Entries = append(data.Entries, ScheduleEntry{
					Date:       day.Date,
					EmployeeID: entry.Person.EmployeeID,
					Code:       ps.WorkCode.PayrollCode,
					Hours:      ps.PayrollDurationInHours,
					Unit:       unit,
					Position:   position,
				})
				data.WorkCodeTotals[ps.WorkCode.PayrollCode] += ps.PayrollDurationInHours
				data.GrandTotalHours += ps.PayrollDurationInHours
			}
		}
	}
	if data.EmployeeName == "" {
		data.EmployeeName = "Unknown"
	}
	if data.EmployeeRank == "" {
		data.EmployeeRank = "N/A"
	}
	return data, nil
}

// Person is one directory entry from the person multi-read.
type Person struct {
	EmployeeID string `json:"employeeId"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	TextEmail  string `json:"textEmail"`
	Status     string `json:"status"`
	HireDate   string `json:"hireDate"`
	Department string `json:"department"`
	Position   string `json:"position"`
}

type personMultiReadResponse struct {
	Persons []struct {
		EmployeeID string `json:"employeeId"`
		FirstName  string `json:"firstName"`
		LastName   string `json:"lastName"`
		Status     string `json:"status"`
		HireDate   string `json:"hireDate"`
		Contact3   struct {
			ContactValue string `json:"contactValue"`
		} `json:"contact3"`
		Contact4 struct {
			ContactValue string `json:"contactValue"`
		} `json:"contact4"`
		Department struct {
			Name string `json:"name"`
		} `json:"department"`
		Position struct {
			Name string `json:"name"`
		} `json:"position"`
	} `json:"persons"`
}

// People fetches the active employee directory as of today. Contact slot 3 is
// the carrier text-message address, slot 4 the regular mailbox.
func (c *Client) People(ctx context.Context) ([]Person, error) {
	payload := map[string]any{
		"filters": map[string]any{
			"dateFilter": map[string]any{
				"inactiveOnDate":  false,
				"noProfileOnDate": false,
				"targetDate":      time.Now().UTC().Format("2006-01-02"),
			},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("kronos: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/api/v1/wfts/person/multi_read?idType=EMPLOYEE", c.baseURL), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("kronos: build request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("kronos: person multi_read: %w: %v", shared.ErrUpstream, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("kronos: person multi_read status %d: %w", resp.StatusCode, shared.ErrUpstream)
	}

	var wire personMultiReadResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("kronos: decode response: %w: %v", shared.ErrUpstream, err)
	}

	people := make([]Person, 0, len(wire.Persons))
	for _, p := range wire.Persons {
		people = append(people, Person{
			EmployeeID: p.EmployeeID,
			FirstName:  p.FirstName,
			LastName:   p.LastName,
			Email:      orNA(p.Contact4.ContactValue),
			TextEmail:  orNA(p.Contact3.ContactValue),
			Status:     orDefault(p.Status, "Active"),
			HireDate:   orNA(p.HireDate),
			Department: orNA(p.Department.Name),
			Position:   orNA(p.Position.Name),
		})
	}
	return people, nil
}

func orNA(s string) string {
	return orDefault(s, "N/A")
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
