package mcpserver

// PageGuide describes the form fields and filters of every page so that
// LLM consumers can drive save_record and list_records without guessing.
const PageGuide = `# Plantdesk Page Guide

Every tool except list_routes works on a page session returned by
open_page. Sessions start from the sample data and expire when idle.
Changes never leave the session.

## Filters

| Route            | Filter values                                      |
|------------------|----------------------------------------------------|
| menu-items       | all, Bakery, Sauces, Frozen, Snacks, Beverages     |
| batching         | all, pending, in-progress, completed               |
| production-lines | all, active, warning, inactive                     |
| inventory        | all, active, warning, inactive                     |
| recipes          | all, or a recipe category such as Bakery or Sauces |

## Form fields

Pass these names as keys of the ` + "`fields`" + ` object of save_record.
Values are strings; numeric fields are parsed leniently.

- **menu-items**: name, category, sku, unitCost, recipe
- **recipes**: name, product, category, yield, prepTime
- **batching**: product, recipe, quantity, line, operator
- **production-lines**: name, currentProduct, throughput, temperature,
  efficiency (0-100), uptime, lastMaintenance, operator
- **inventory**: name, category, stock, unit, minLevel, lastRestocked

Recipe ingredients and steps are edited through the HTTP form API.

## Status changes

1. toggle_status flips a menu item between active and inactive. A
   production line goes inactive to active, and active or warning to
   inactive.
2. start_batch moves a pending batch to in-progress at 10% and stamps
   the start time.
3. complete_batch moves an in-progress batch to completed at 100%.
4. Any other transition is rejected and the batch is left unchanged.
`
